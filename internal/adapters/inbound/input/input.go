// Package input parses raw text typed at the shell or sent by a tool client
// into domain values.
package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// Price parses a decimal amount such as "20000" or "1.5".
func Price(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price %q is not a number", s)
	}
	return d, nil
}

// Quantity parses a whole number of units.
func Quantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	return n, nil
}

// Expiry parses a date in any common layout and drops the time of day.
func Expiry(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expiry %q is not a date", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Line is one "CODE=QTY" cart request.
type Line struct {
	Token    string
	Quantity int
}

// ParseLine parses "CODE=QTY".
func ParseLine(s string) (Line, error) {
	token, qty, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(token) == "" {
		return Line{}, fmt.Errorf("cart line %q must look like CODE=QTY", s)
	}
	n, err := Quantity(qty)
	if err != nil {
		return Line{}, err
	}
	return Line{Token: strings.TrimSpace(token), Quantity: n}, nil
}

// ParseLines parses a comma-separated list of "CODE=QTY" entries.
func ParseLines(s string) ([]Line, error) {
	var out []Line
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := ParseLine(part)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no cart lines in %q", s)
	}
	return out, nil
}

// IsYes reports whether answer confirms a destructive or expensive action.
func IsYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
