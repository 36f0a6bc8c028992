package pdfimport

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// HomeCurrency is the account currency of the supported brokers. Activities
// are expressed in it, foreign amounts are converted.
const HomeCurrency = "EUR"

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("currency code is missing")
	}
	if money.GetCurrency(code) == nil || len(code) != 3 {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// FormatAmount formats d in the currency's display format, e.g. "€984.92".
// Unknown currencies are rendered as the plain number followed by the code.
func FormatAmount(d decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.String() + " " + code
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
