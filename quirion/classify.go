package quirion

import (
	"strings"

	"github.com/etnz/pdfimport/fragment"
)

// DocumentKind is the type of a quirion document.
type DocumentKind int

const (
	KindUnknown        DocumentKind = iota
	KindStatement                   // Kontoauszug: any number of buys, sells and dividends.
	KindDividendNotice              // Erträgnisabrechnung: exactly one dividend.
)

func (k DocumentKind) String() string {
	switch k {
	case KindStatement:
		return "statement"
	case KindDividendNotice:
		return "dividend notice"
	}
	return "unknown"
}

// The text extractor splits these markers over several fragments, e.g.
// "Quir", "in Pr", "ivatbank A", "G".
const (
	brokerMarker      = "Quirin Privatbank AG"
	brokerHead        = "Quir"
	noticeMarker      = "Erträgnisabrechnung"
	noticeHead        = "Erträ"
	markerFragments   = 4
	statementFragment = "Kontoauszug"
)

func isBroker(seq fragment.Sequence) bool {
	return fragment.Cluttered(seq, brokerHead, markerFragments, brokerMarker)
}

func isStatement(seq fragment.Sequence) bool {
	return seq.Contains(statementFragment)
}

func isDividendNotice(seq fragment.Sequence) bool {
	return fragment.Cluttered(seq, noticeHead, markerFragments, noticeMarker)
}

// Classify returns the kind of document, from its first page.
// It does not check the broker, see CanParse.
func Classify(firstPage fragment.Sequence) DocumentKind {
	switch {
	case isStatement(firstPage):
		return KindStatement
	case isDividendNotice(firstPage):
		return KindDividendNotice
	}
	return KindUnknown
}

// CanParse reports whether pages are a quirion statement or dividend notice.
//
// The extension must be "pdf", and the first page must carry both the broker
// name and a known document title.
func CanParse(pages fragment.Pages, extension string) bool {
	if strings.TrimPrefix(strings.ToLower(extension), ".") != "pdf" {
		return false
	}
	first := pages.First()
	return isBroker(first) && Classify(first) != KindUnknown
}
