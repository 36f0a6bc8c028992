package pdftext

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pdfimport/fragment"
)

// DefaultJSONPath selects the whole JSON document.
const DefaultJSONPath = "$"

// DecodeJSON reads a JSON fragment dump from r.
//
// path is a jsonpath expression selecting either a list of pages, each a list
// of strings, or a single list of strings for a one page document.
func DecodeJSON(r io.Reader, path string) (fragment.Pages, error) {
	if path == "" {
		path = DefaultJSONPath
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode fragments: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select fragments with %q: %w", path, err)
	}
	return toPages(jval)
}

func toPages(jval any) (fragment.Pages, error) {
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("fragments must be an array, got %T", jval)
	}
	if page, err := toPage(list); err == nil {
		// a flat list is a one page document, unless it is empty.
		if len(page) > 0 {
			return fragment.Pages{page}, nil
		}
		return fragment.Pages{}, nil
	}
	pages := make(fragment.Pages, 0, len(list))
	for i, item := range list {
		if item == nil {
			pages = append(pages, nil) // a page without text
			continue
		}
		l, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("page %d must be an array, got %T", i+1, item)
		}
		page, err := toPage(l)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func toPage(list []any) ([]string, error) {
	page := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("fragment %d must be a string, got %T", i, item)
		}
		page = append(page, s)
	}
	return page, nil
}

// Document is a source of fragments.
type Document struct {
	Path  string
	Pages fragment.Pages
	// Extension of the original document, as seen by the parsers. JSON dumps
	// are PDF extractions.
	Extension string
}

// Open reads the document at path: a PDF file, or a JSON dump selected with
// jsonPath.
func Open(path, jsonPath string) (*Document, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "pdf":
		pages, err := ReadPDF(path)
		if err != nil {
			return nil, err
		}
		return &Document{Path: path, Pages: pages, Extension: "pdf"}, nil
	case "json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q: %w", path, err)
		}
		defer f.Close()
		pages, err := DecodeJSON(f, jsonPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", path, err)
		}
		return &Document{Path: path, Pages: pages, Extension: "pdf"}, nil
	}
	return nil, fmt.Errorf("unsupported document type %q: %s", ext, path)
}
