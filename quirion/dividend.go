package quirion

import (
	"fmt"
	"strings"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/date"
	"github.com/etnz/pdfimport/fragment"
	"github.com/shopspring/decimal"
)

// A dividend notice is a two column layout where labels and values are
// interleaved in the text flow. Each field is found relative to a label.
var (
	noticeISIN = fragment.Field[string]{
		Name:    "isin",
		Anchor:  fragment.At("ISIN", -1),
		Extract: parseNoticeISIN,
	}
	noticeShares = fragment.Field[decimal.Decimal]{
		Name:    "shares",
		Anchor:  fragment.Near("Nominal/Stüc", -1),
		Extract: parseNoticeShares,
	}
	noticePrice = fragment.Field[decimal.Decimal]{
		Name:    "price",
		Anchor:  fragment.Near("pro Anteil", 0),
		Extract: parsePerUnit,
	}
	noticeDate = fragment.Field[date.Date]{
		Name:    "payment date",
		Anchor:  fragment.At("Zahlungstag", -1),
		Extract: date.ParseGerman,
	}
	noticeAmount = fragment.Field[decimal.Decimal]{
		Name:    "amount",
		Anchor:  fragment.At("Zahlungstag", 1),
		Extract: pdfimport.ParseGermanNum,
	}
	noticeCurrency = fragment.Field[string]{
		Name:    "currency",
		Anchor:  fragment.Near("Währ", -1),
		Extract: parseCurrency,
	}
	noticeFxRate = fragment.Field[decimal.Decimal]{
		Name:    "fx rate",
		Anchor:  fragment.Near("visenkurs", -3),
		Extract: pdfimport.ParseGermanNum,
	}

	// tax components, reported as negative amounts.
	noticeTaxes = []fragment.Field[decimal.Decimal]{
		{Name: "capital gains tax", Anchor: fragment.Near("Kapitaler", -2), Extract: pdfimport.ParseGermanNum},
		{Name: "solidarity surcharge", Anchor: fragment.Near("Solidar", -2), Extract: pdfimport.ParseGermanNum},
		{Name: "church tax", Anchor: fragment.Near("Kirchensteuer", -2), Extract: pdfimport.ParseGermanNum},
	}
)

// the company name runs from two fragments after the salutation up to the
// security label.
const (
	companyStart       = "teilen wir nachstehende Abrechn"
	companyStartOffset = 2
	companyEnd         = "Wertpapierbez"
)

// parseNoticeISIN finds the ISIN in its fragment, surrounding text aside.
func parseNoticeISIN(s string) (string, error) {
	isin, ok := pdfimport.FindISIN(s)
	if !ok {
		return "", fmt.Errorf("no ISIN in %q", s)
	}
	return isin, nil
}

// parseNoticeShares reads "10,714 ST".
func parseNoticeShares(s string) (decimal.Decimal, error) {
	return pdfimport.ParseGermanNum(strings.TrimSuffix(strings.TrimSpace(s), " ST"))
}

// parsePerUnit reads the amount in "USD 0,3019 pro Anteil", that is the second
// space separated token.
func parsePerUnit(s string) (decimal.Decimal, error) {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return decimal.Zero, fmt.Errorf("no amount in %q", s)
	}
	return pdfimport.ParseGermanNum(tokens[1])
}

func parseCurrency(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := pdfimport.ValidateCurrency(s); err != nil {
		return "", err
	}
	return s, nil
}

// noticeCompany returns the company name, if both its delimiters are present.
func noticeCompany(seq fragment.Sequence) (string, bool) {
	start := seq.Index(0, fragment.Exact(companyStart))
	if start < 0 {
		return "", false
	}
	start += companyStartOffset
	end := seq.Index(start, fragment.Exact(companyEnd))
	if end < 0 {
		return "", false
	}
	return fragment.Join(seq, start, end-start), true
}

// ExtractDividendNotice reads the single dividend of a notice.
//
// A notice paid in a foreign currency has its price, tax and amount converted
// with the notice's fx rate, rounded down to 4 places.
func ExtractDividendNotice(seq fragment.Sequence) (pdfimport.Activity, error) {
	var a pdfimport.Activity

	isin, _, err := fragment.Lookup(seq, noticeISIN)
	if err != nil {
		return a, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	company, _ := noticeCompany(seq)

	shares, err := require(seq, noticeShares)
	if err != nil {
		return a, err
	}
	price, err := require(seq, noticePrice)
	if err != nil {
		return a, err
	}
	day, err := require(seq, noticeDate)
	if err != nil {
		return a, err
	}
	amount, err := require(seq, noticeAmount)
	if err != nil {
		return a, err
	}
	currency, err := require(seq, noticeCurrency)
	if err != nil {
		return a, err
	}
	var tax decimal.Decimal
	for _, f := range noticeTaxes {
		v, err := require(seq, f)
		if err != nil {
			return a, err
		}
		tax = tax.Add(v)
	}
	tax = tax.Neg()

	a = pdfimport.Activity{
		Broker:   BrokerName,
		Type:     pdfimport.Dividend,
		Date:     day,
		DateTime: day.Timestamp(),
		ISIN:     isin,
		Company:  company,
		Shares:   shares.Abs(),
		Price:    price.Abs(),
		Fee:      decimal.Zero,
		Tax:      tax,
		Amount:   amount.Abs(),
	}

	if currency != pdfimport.HomeCurrency {
		fx, ok, err := fragment.Lookup(seq, noticeFxRate)
		if err != nil {
			return a, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if !ok || !fx.IsPositive() {
			return a, fmt.Errorf("%w: dividend paid in %s", ErrMissingFxRate, currency)
		}
		a.ForeignCurrency = currency
		a.FxRate = fx
		a.Price = pdfimport.DivRoundDown(a.Price, fx, pricePrecision)
		a.Tax = pdfimport.DivRoundDown(a.Tax, fx, pricePrecision)
		a.Amount = pdfimport.DivRoundDown(a.Amount, fx, pricePrecision)
	}

	return a.Validate()
}

// require resolves a mandatory field, classifying failures as malformed input.
func require[T any](seq fragment.Sequence, f fragment.Field[T]) (T, error) {
	v, err := fragment.Require(seq, f)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return v, nil
}
