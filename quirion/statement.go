package quirion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/date"
	"github.com/etnz/pdfimport/fragment"
	"github.com/shopspring/decimal"
)

// A statement transaction looks like:
//
//	"-984,92",                  amount        anchor-4
//	"EUR",                      currency      anchor-3
//	"19.07.2021",               value date    anchor-2
//	"15.07.2021",               booking date  anchor-1
//	"Wertpapier Kauf",          anchor
//	", Ref",
//	".: 227865486",
//	"Am",                       company, split anywhere
//	"undi Inde",
//	"x Solu.-A.PRIME GL.",
//	"Nam.-Ant.UCI.ETF DR USD Dis",
//	".oN",
//	"LU1931974692, ST 37,722",  ISIN and shares
//
// A sell anchor is split in two fragments "Wertpapier", "Verkauf". A dividend
// anchor "Erträgnisabrechn" is followed after the ISIN line by the taxes:
//
//	"KEST",
//	": EUR -0,43, SOLI:",
//	"EUR -0,02",
const (
	buyAnchor       = "Wertpapier Kauf"
	sellAnchor      = "Wertpapier"
	sellAnchorNext  = "Verkauf"
	dividendAnchor  = "Erträgnisabrechn"
	taxMarker       = "KEST"
	sharesMarker    = " ST "
	amountOffset    = -4
	currencyOffset  = -3
	bookingOffset   = -1
	buySkip         = 3 // anchor, ", Ref", ".: <ref>"
	sellSkip        = 4 // "Wertpapier", "Verkauf", ", Ref", ".: <ref>"
	pricePrecision  = 4
	minAnchorOffset = -amountOffset
)

// taxRegex finds the signed amount in a statement tax fragment.
var taxRegex = regexp.MustCompile(`-\d[\d.]*,\d+`)

// ScanState is the position of a statement scan.
//
// It is an immutable value, each Step returns the next one. The zero value is
// an empty scan.
type ScanState struct {
	seq fragment.Sequence
	pos int
}

// NewScanState returns a scan positioned at the start of seq.
func NewScanState(seq fragment.Sequence) ScanState { return ScanState{seq: seq} }

// Pos returns the index of the next fragment to scan.
func (s ScanState) Pos() int { return s.pos }

// Done reports whether the whole sequence has been consumed.
func (s ScanState) Done() bool { return s.pos >= len(s.seq) }

func (s ScanState) at(pos int) ScanState { return ScanState{seq: s.seq, pos: pos} }

// nextAnchor finds the first transaction anchor at or after from.
func nextAnchor(seq fragment.Sequence, from int) (pdfimport.ActivityType, int, bool) {
	for i := max(from, 0); i < len(seq); i++ {
		switch {
		case seq[i] == buyAnchor:
			return pdfimport.Buy, i, true
		case seq[i] == sellAnchor && i+1 < len(seq) && seq[i+1] == sellAnchorNext:
			return pdfimport.Sell, i, true
		case seq[i] == dividendAnchor:
			return pdfimport.Dividend, i, true
		}
	}
	return "", -1, false
}

// Step reads the next transaction of the statement.
//
// It returns the activity and the state after the consumed region. When no
// anchor is left, the activity is nil and the returned state is Done.
// The scan cannot continue after an error.
func Step(s ScanState) (ScanState, *pdfimport.Activity, error) {
	seq := s.seq
	typ, i, ok := nextAnchor(seq, s.pos)
	if !ok {
		return s.at(len(seq)), nil, nil
	}
	if i < minAnchorOffset {
		return s, nil, fmt.Errorf("%w: %s anchor at %d has no booking line before it", ErrMalformed, typ, i)
	}

	if currency := seq[i+currencyOffset]; currency != pdfimport.HomeCurrency {
		return s, nil, fmt.Errorf("%w: %s on fragment %d is in %q", ErrUnsupportedCurrency, typ, i, currency)
	}
	amount, err := pdfimport.ParseGermanNum(seq[i+amountOffset])
	if err != nil {
		return s, nil, fmt.Errorf("%w: %s amount: %w", ErrMalformed, typ, err)
	}
	amount = amount.Abs()

	day, ts, err := date.DateAndTimestamp(seq[i+bookingOffset])
	if err != nil {
		return s, nil, fmt.Errorf("%w: %s booking date: %w", ErrMalformed, typ, err)
	}

	start := i + buySkip
	if typ == pdfimport.Sell {
		start = i + sellSkip
	}
	line, isin, shares, err := readPosition(seq, start)
	if err != nil {
		return s, nil, fmt.Errorf("%w: %s at fragment %d: %w", ErrMalformed, typ, i, err)
	}
	end := line

	tax := decimal.Zero
	if typ == pdfimport.Dividend {
		end++ // the tax marker, if any
		tax, err = readStatementTax(seq, end)
		if err != nil {
			return s, nil, fmt.Errorf("%w: %s at fragment %d: %w", ErrMalformed, typ, i, err)
		}
		// statement amounts for dividends are net of tax.
		amount = amount.Add(tax).Abs()
	}

	a := pdfimport.Activity{
		Broker:   BrokerName,
		Type:     typ,
		Date:     day,
		DateTime: ts,
		ISIN:     isin,
		Company:  fragment.Join(seq, start, line-start),
		Shares:   shares,
		Price:    pdfimport.DivRoundDown(amount, shares, pricePrecision),
		Fee:      decimal.Zero,
		Tax:      tax,
		Amount:   amount,
	}
	a, err = a.Validate()
	if err != nil {
		return s, nil, err
	}
	return s.at(end + 1), &a, nil
}

// readPosition walks from start to the first ISIN line and returns its index
// along with the ISIN and the number of shares it holds. The fragments before
// it are the company name.
func readPosition(seq fragment.Sequence, start int) (line int, isin string, shares decimal.Decimal, err error) {
	for line = start; line < len(seq); line++ {
		var ok bool
		isin, shares, ok, err = parsePositionLine(seq[line])
		if err != nil {
			return line, "", decimal.Zero, err
		}
		if ok {
			return line, isin, shares, nil
		}
	}
	return line, "", decimal.Zero, fmt.Errorf("no ISIN line after fragment %d", start)
}

// parsePositionLine reads "LU1931974692, ST 37,722".
// ok is false if the line does not start with an ISIN.
func parsePositionLine(line string) (isin string, shares decimal.Decimal, ok bool, err error) {
	head, rest, _ := strings.Cut(line, ",")
	isin, ok = pdfimport.FindISIN(head)
	if !ok {
		return "", decimal.Zero, false, nil
	}
	_, text, found := strings.Cut(rest, sharesMarker)
	if !found {
		return isin, decimal.Zero, true, fmt.Errorf("no shares in ISIN line %q", line)
	}
	shares, err = pdfimport.ParseGermanNum(text)
	if err != nil {
		return isin, decimal.Zero, true, fmt.Errorf("shares in ISIN line %q: %w", line, err)
	}
	if shares.IsZero() {
		return isin, decimal.Zero, true, fmt.Errorf("no shares in ISIN line %q", line)
	}
	return isin, shares.Abs(), true, nil
}

// readStatementTax reads the tax block of a statement dividend at i.
//
// Without the tax marker there is no tax. The block holds the capital gains
// tax and the solidarity surcharge as negative amounts, church tax is not
// listed. The returned tax is positive.
func readStatementTax(seq fragment.Sequence, i int) (decimal.Decimal, error) {
	if f, _ := seq.At(i); f != taxMarker {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	for _, name := range []string{"capital gains tax", "solidarity surcharge"} {
		i++
		f, _ := seq.At(i)
		m := taxRegex.FindString(f)
		if m == "" {
			return decimal.Zero, fmt.Errorf("no %s in %q", name, f)
		}
		d, err := pdfimport.ParseGermanNum(m)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", name, err)
		}
		total = total.Add(d)
	}
	return total.Neg(), nil
}

// ScanStatement returns the activities of a statement, in document order.
//
// A statement without transaction is not an error. The first malformed
// transaction fails the whole statement.
func ScanStatement(seq fragment.Sequence) ([]pdfimport.Activity, error) {
	var activities []pdfimport.Activity
	state := NewScanState(seq)
	for !state.Done() {
		next, a, err := Step(state)
		if err != nil {
			return nil, err
		}
		if a == nil {
			break
		}
		activities = append(activities, *a)
		state = next
	}
	return activities, nil
}
