// Package money parses and formats payment amounts.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxCents is the largest amount a single link may carry (10,000,000,000.00).
// Totals over millions of links stay inside int64.
const MaxCents int64 = 1_000_000_000_000

var (
	// ErrInvalidAmount is returned for input that is not a plain number with at most two decimals.
	ErrInvalidAmount = errors.New("amount must be a number with at most two decimal places")
	// ErrNonPositive is returned for amounts of zero.
	ErrNonPositive = errors.New("amount must be greater than zero")
	// ErrTooLarge is returned for amounts above MaxCents.
	ErrTooLarge = fmt.Errorf("%w: above the %d limit", ErrInvalidAmount, MaxCents/100)
)

var (
	amountRe = regexp.MustCompile(`^\d+(\.\d{0,2})?$`)
	maxDec   = decimal.New(MaxCents, -2)
	printer  = message.NewPrinter(language.English)
)

// Valid reports whether s is acceptable as partially typed amount input.
// An empty string is allowed so a field can be cleared.
func Valid(s string) bool {
	if s == "" {
		return true
	}
	if !amountRe.MatchString(s) {
		return false
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	return err == nil && d.LessThanOrEqual(maxDec)
}

// Parse reads a user-entered amount such as "3000" or "12.5".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountRe.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositive
	}
	if d.GreaterThan(maxDec) {
		return decimal.Zero, ErrTooLarge
	}
	return d, nil
}

// ToCents converts d to minor units, rounding half away from zero.
// d must come from Parse so it fits in int64.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts minor units back to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Plain renders cents without currency or grouping, dropping a zero fraction: 300000 → "3000".
func Plain(cents int64) string {
	d := FromCents(cents)
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}

// Format renders cents for display with English digit grouping, e.g. "KES 3,000.00".
func Format(currency string, cents int64) string {
	sign := ""
	d := FromCents(cents)
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(2).IntPart()
	out := sign + printer.Sprintf("%d.%02d", whole.IntPart(), frac)
	if currency == "" {
		return out
	}
	return currency + " " + out
}
