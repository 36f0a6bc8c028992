// Package pdftext produces the fragments of a document, either extracted from
// a PDF file or decoded from a JSON dump of a previous extraction.
package pdftext

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/etnz/pdfimport/fragment"
)

// Verbose logs the glyph runs dropped during extraction.
var Verbose bool

// ReadPDF extracts the text fragments of each page of the PDF file at path.
func ReadPDF(path string) (pages fragment.Pages, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open pdf %q: %w", path, err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot open pdf %q: %w", path, err)
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot open pdf %q: %w", path, err)
	}
	// the pdf reader reports malformed content streams by panicking.
	defer func() {
		if e := recover(); e != nil {
			pages, err = nil, fmt.Errorf("cannot read pdf %q: %v", path, e)
		}
	}()

	n := r.NumPage()
	pages = make(fragment.Pages, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, group(p.Content().Text))
	}
	return pages, nil
}

// group merges glyph runs into fragments. Runs are merged while they share
// the font, the baseline and follow each other without horizontal gap.
func group(texts []pdf.Text) []string {
	var (
		frags []string
		b     strings.Builder
		last  pdf.Text
	)
	flush := func() {
		if b.Len() == 0 {
			return
		}
		f := b.String()
		b.Reset()
		if strings.TrimSpace(f) == "" {
			if Verbose {
				log.Printf("pdftext: skipping blank fragment at (%.1f, %.1f)", last.X, last.Y)
			}
			return
		}
		frags = append(frags, f)
	}
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if b.Len() > 0 && !contiguous(last, t) {
			flush()
		}
		b.WriteString(t.S)
		last = t
	}
	flush()
	return frags
}

// contiguous reports whether b directly follows a on the same line.
func contiguous(a, b pdf.Text) bool {
	if a.Font != b.Font || math.Abs(a.Y-b.Y) > 0.5 {
		return false
	}
	tolerance := 0.15 * math.Max(a.FontSize, 1)
	return math.Abs(b.X-(a.X+a.W)) <= tolerance
}
