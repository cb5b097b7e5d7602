// Package importer parses expense CSV files into drafts. The expected shape
// is a header row naming description, date and cost columns (any order,
// extra columns ignored), as produced by the exporter and by common
// spreadsheet tools.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/mdineen/outgo/internal/encoding"
	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/money"
)

// Date layouts accepted on import. Everything is normalized to YYYY-MM-DD.
var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
}

// Parse reads a CSV export and produces validated drafts. Rows without a
// parseable date or cost are skipped (spreadsheet exports love footer rows);
// a data row with an empty description is an error, since silently importing
// it would fail validation later anyway.
func Parse(r io.Reader) ([]expense.Draft, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	rows, err := readRows(data, ',')
	if err != nil {
		return nil, err
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		// Retry with semicolons before giving up; some locales export
		// CSV that way.
		if rows, err = readRows(data, ';'); err != nil {
			return nil, err
		}

		cols, headerIdx = findHeader(rows)
	}

	if cols == nil {
		return nil, fmt.Errorf("no header row with description, date and cost columns found")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// columns maps the three field positions discovered in the header.
type columns struct {
	desc, date, cost int
}

// findHeader scans for the first row naming all three expected columns,
// case-insensitively. Returns nil when no row qualifies.
func findHeader(rows [][]string) (*columns, int) {
	for rowIdx, row := range rows {
		cols := columns{desc: -1, date: -1, cost: -1}

		for i, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "description":
				cols.desc = i
			case "date":
				cols.date = i
			case "cost", "amount":
				cols.cost = i
			}
		}

		if cols.desc >= 0 && cols.date >= 0 && cols.cost >= 0 {
			return &cols, rowIdx
		}
	}

	return nil, 0
}

// parseRows extracts drafts from the data rows. headerRowNum is the 0-based
// header index in the original file, used for error messages.
func parseRows(cols *columns, rows [][]string, headerRowNum int) ([]expense.Draft, error) {
	var drafts []expense.Draft

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		date, ok := parseDate(cellValue(row, cols.date))
		if !ok {
			continue
		}

		cents, err := money.ParseAmount(cellValue(row, cols.cost))
		if err != nil {
			continue
		}

		desc := cellValue(row, cols.desc)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		drafts = append(drafts, expense.Draft{
			Description: desc,
			Date:        date,
			Cost:        cents,
		})
	}

	return drafts, nil
}

// parseDate normalizes a cell to YYYY-MM-DD. Empty or unrecognizable cells
// report false so footer rows get skipped rather than failing the import.
func parseDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}

	return "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
