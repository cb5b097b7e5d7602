// Package export writes an account's expenses out as a CSV file the importer
// can read back.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mdineen/outgo/internal/expense"
	"github.com/mdineen/outgo/internal/money"
)

// Service handles the export of expenses.
type Service struct {
	expenses *expense.Service
}

// NewService creates a new export Service.
func NewService(expenses *expense.Service) *Service {
	return &Service{expenses: expenses}
}

// Export writes the account's expenses to a timestamped CSV file in the
// output directory and returns the file path.
func (s *Service) Export(ctx context.Context, accountID uuid.UUID, outputDir string) (string, error) {
	items, err := s.expenses.List(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("listing expenses: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("expenses-%s.csv", time.Now().Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := Write(f, items); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// Write emits the CSV document for the given expenses. The header matches
// what the importer looks for, so a round trip needs no massaging.
func Write(w io.Writer, items []*expense.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"description", "date", "cost"}); err != nil {
		return err
	}

	for _, e := range items {
		if err := cw.Write([]string{e.Description, e.Date, money.Plain(e.Cost)}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
