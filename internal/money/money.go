// Package money handles parsing and display of expense amounts. Amounts are
// stored as integer cents; parsing normalizes user input to two fraction
// digits before anything reaches the store.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// ParseAmount parses a user-entered cost into cents. Unparseable or negative
// input is rejected; valid input is rounded to two fraction digits.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}

	return d.Round(2).Mul(decimal.NewFromInt(100)).IntPart(), nil
}

// Format renders cents as localized currency text, e.g. "$1,234.56".
func Format(cents int64) string {
	return printer.Sprintf("$%.2f", float64(cents)/100.0)
}

// Plain renders cents as a bare two-decimal number, e.g. "1234.56".
// Used to seed edit fields where the currency symbol would get in the way.
func Plain(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
