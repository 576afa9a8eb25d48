package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewID returns a time-ordered unique record identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

var amountReplacer = strings.NewReplacer("₪", "", " ", "", "\u00a0", "")

// ParseAmount turns user input such as "1,250.50", "1.234,56", "12,50" or "₪300" into a
// non-negative amount. Whichever of ',' and '.' comes last is the decimal mark; a lone
// separator followed by three digits groups thousands.
func ParseAmount(s string) (float64, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	cleaned, ok := normalizeAmount(cleaned)
	if !ok {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}

	return d.InexactFloat64(), nil
}

// normalizeAmount rewrites s with '.' as the only decimal mark and no group separators.
func normalizeAmount(s string) (string, bool) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return withDecimalMark(s, ".", ",")
		}

		return withDecimalMark(s, ",", ".")
	case lastComma >= 0:
		if digits := len(s) - lastComma - 1; strings.Count(s, ",") == 1 && digits >= 1 && digits <= 2 {
			return strings.Replace(s, ",", ".", 1), true
		}

		return ungroup(s, ",")
	case strings.Count(s, ".") > 1:
		return ungroup(s, ".")
	}

	return s, true
}

// withDecimalMark drops the group separator sep and turns the final mark into '.'.
func withDecimalMark(s, sep, mark string) (string, bool) {
	i := strings.LastIndex(s, mark)
	whole, frac := s[:i], s[i+1:]

	if strings.Contains(whole, mark) || strings.Contains(frac, sep) {
		return "", false
	}

	whole, ok := ungroup(whole, sep)
	if !ok {
		return "", false
	}

	return whole + "." + frac, true
}

// ungroup removes sep when every group after the first has three digits.
func ungroup(s, sep string) (string, bool) {
	groups := strings.Split(s, sep)
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}

	return strings.Join(groups, ""), true
}
