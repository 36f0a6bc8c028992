package quirion

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/fragment"
	"github.com/google/go-cmp/cmp"
)

func wantNoticeDividend() pdfimport.Activity {
	a := wantDividend()
	a.Tax = dec("0.75")
	return a
}

// without returns a copy of seq without the fragments equal to text.
func without(seq fragment.Sequence, text string) fragment.Sequence {
	return slices.DeleteFunc(slices.Clone(seq), func(f string) bool { return f == text })
}

func TestExtractDividendNotice(t *testing.T) {
	foreign := wantDividend()
	foreign.Price = dec("0.2688")
	foreign.Tax = dec("0.7568")
	foreign.Amount = dec("2.8759")
	foreign.ForeignCurrency = "USD"
	foreign.FxRate = dec("1.1231")

	paddedISIN := slices.Clone(homeNotice)
	paddedISIN[slices.Index(paddedISIN, "IE00B4L5Y983")] = "IE00B4L5Y983 "

	noCompany := wantNoticeDividend()
	noCompany.Company = ""

	testCases := []struct {
		name string
		seq  fragment.Sequence
		want pdfimport.Activity
	}{
		{name: "home currency", seq: homeNotice, want: wantNoticeDividend()},
		{name: "foreign currency", seq: foreignNotice, want: foreign},
		{name: "isin with trailing space", seq: paddedISIN, want: wantNoticeDividend()},
		{name: "without company", seq: without(homeNotice, "Wertpapierbez"), want: noCompany},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractDividendNotice(tc.seq)
			if err != nil {
				t.Fatalf("ExtractDividendNotice() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ExtractDividendNotice() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractDividendNotice_Errors(t *testing.T) {
	badISIN := slices.Clone(homeNotice)
	badISIN[slices.Index(badISIN, "IE00B4L5Y983")] = "Irland"
	badShares := slices.Clone(homeNotice)
	badShares[slices.Index(badShares, "10,714 ST")] = "viele"

	testCases := []struct {
		name    string
		seq     fragment.Sequence
		wantErr error
	}{
		{name: "missing church tax", seq: without(homeNotice, "Kirchensteuer"), wantErr: ErrMissingAnchor},
		{name: "missing currency", seq: without(homeNotice, "Währung"), wantErr: ErrMissingAnchor},
		{name: "missing payment day", seq: without(homeNotice, "Zahlungstag"), wantErr: ErrMissingAnchor},
		{name: "missing fx rate", seq: without(foreignNotice, "Devisenkurs"), wantErr: ErrMissingFxRate},
		{name: "unreadable isin", seq: badISIN, wantErr: ErrMalformed},
		{name: "unreadable shares", seq: badShares, wantErr: ErrMalformed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractDividendNotice(tc.seq)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ExtractDividendNotice() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNoticeFields(t *testing.T) {
	isin, ok, err := fragment.Lookup(homeNotice, noticeISIN)
	if err != nil || !ok || isin != "IE00B4L5Y983" {
		t.Errorf("Lookup(isin) = %q, %v, %v, want IE00B4L5Y983", isin, ok, err)
	}
	d, err := fragment.Require(homeNotice, noticeDate)
	if err != nil {
		t.Fatalf("Require(date) returned unexpected error: %v", err)
	}
	if want := day(2021, time.July, 20); d != want {
		t.Errorf("Require(date) = %v, want %v", d, want)
	}
	fx, err := fragment.Require(foreignNotice, noticeFxRate)
	if err != nil {
		t.Fatalf("Require(fx rate) returned unexpected error: %v", err)
	}
	if !fx.Equal(dec("1.1231")) {
		t.Errorf("Require(fx rate) = %v, want 1.1231", fx)
	}
}

func TestParsePerUnit(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "EUR 0,2688 pro Anteil", want: "0.2688"},
		{input: "USD 1.000,5 pro Anteil", want: "1000.5"},
		{input: "pro", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parsePerUnit(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parsePerUnit(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if !tc.wantErr && !got.Equal(dec(tc.want)) {
				t.Errorf("parsePerUnit(%q) = %v, want %s", tc.input, got, tc.want)
			}
		})
	}
}
