// Package quirion reads the PDF documents of the quirion robo-advisor, held at
// Quirin Privatbank AG.
//
// Two documents are supported:
//   - the account statement (Kontoauszug), listing buys, sells and dividends;
//   - the dividend notice (Erträgnisabrechnung), detailing one dividend and its
//     taxes, possibly paid in a foreign currency.
//
// Both are read from the flat sequence of text fragments extracted from the
// PDF. Fragments are arbitrary pieces of text: a label, a value or a word cut
// in the middle. Values are located relative to known anchor fragments.
package quirion

import (
	"errors"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/fragment"
)

// BrokerName identifies quirion activities.
const BrokerName = "quirion"

var (
	// ErrUnsupportedCurrency is returned for statement transactions not booked in EUR.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrMalformed is returned when the fragments do not have the expected layout.
	ErrMalformed = errors.New("malformed document")
	// ErrMissingAnchor is returned when a required label is absent.
	ErrMissingAnchor = fragment.ErrNotFound
	// ErrMissingFxRate is returned for a foreign dividend without exchange rate.
	ErrMissingFxRate = errors.New("missing fx rate")
)

func init() { pdfimport.Register(New()) }

// Parser is the quirion pdfimport.Parser.
type Parser struct{}

// New returns a quirion Parser.
func New() *Parser { return &Parser{} }

func (*Parser) Name() string    { return BrokerName }
func (*Parser) TextBased() bool { return true }

func (*Parser) CanParse(pages fragment.Pages, extension string) bool {
	return CanParse(pages, extension)
}

// Parse classifies the document on its first page and reads all its pages.
// An unknown document yields no activities.
func (*Parser) Parse(pages fragment.Pages) (pdfimport.Result, error) {
	var activities []pdfimport.Activity
	switch Classify(pages.First()) {
	case KindStatement:
		acts, err := ScanStatement(pages.Flatten())
		if err != nil {
			return pdfimport.Result{}, err
		}
		activities = acts
	case KindDividendNotice:
		a, err := ExtractDividendNotice(pages.Flatten())
		if err != nil {
			return pdfimport.Result{}, err
		}
		activities = []pdfimport.Activity{a}
	}
	return pdfimport.NewResult(activities), nil
}
