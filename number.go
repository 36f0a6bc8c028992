package pdfimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseGermanNum parses a number written the German way: "." groups thousands
// and "," separates decimals, as in "-1.234,56".
//
// Surrounding spaces are ignored, anything else that is not part of the number
// is an error.
func ParseGermanNum(s string) (decimal.Decimal, error) {
	t := strings.TrimSpace(s)
	t = strings.ReplaceAll(t, ".", "")
	t = strings.Replace(t, ",", ".", 1)
	if t == "" {
		return decimal.Zero, fmt.Errorf("invalid number %q: empty", s)
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d, nil
}

// RoundDown truncates d to places decimals, towards zero.
func RoundDown(d decimal.Decimal, places int32) decimal.Decimal { return d.RoundDown(places) }

// DivRoundDown returns a / b truncated to places decimals.
func DivRoundDown(a, b decimal.Decimal, places int32) decimal.Decimal {
	return a.Div(b).RoundDown(places)
}
