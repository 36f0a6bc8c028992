package pdfimport

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/pdfimport/fragment"
)

// Status is the outcome code of a Parse.
type Status int

const (
	// StatusSuccess means at least one activity was found.
	StatusSuccess Status = 0
	// StatusNoActivities means the document was accepted but contained no
	// recognized transaction.
	StatusNoActivities Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoActivities:
		return "no activities found"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is what a Parser returns for a document.
type Result struct {
	Activities []Activity
	Status     Status
}

// NewResult wraps activities with the matching status.
func NewResult(activities []Activity) Result {
	if len(activities) == 0 {
		return Result{Activities: []Activity{}, Status: StatusNoActivities}
	}
	return Result{Activities: activities, Status: StatusSuccess}
}

// Parser reads the documents of one broker.
type Parser interface {
	// Name is the unique broker identifier, also used as Activity.Broker.
	Name() string
	// CanParse tells, from the first page, if the document is one of this broker's.
	// extension is the file extension without its leading dot.
	CanParse(pages fragment.Pages, extension string) bool
	// Parse extracts the activities of a document accepted by CanParse.
	Parse(pages fragment.Pages) (Result, error)
	// TextBased reports that the parser works on extracted text rather than
	// on the page layout.
	TextBased() bool
}

// ErrNoParser is returned when no registered parser accepts a document or a name.
var ErrNoParser = errors.New("no parser available")

var (
	parsersMu sync.RWMutex
	parsers   = make(map[string]Parser)
)

// Register makes a parser available by its name.
// It panics if a parser with the same name is already registered.
func Register(p Parser) {
	parsersMu.Lock()
	defer parsersMu.Unlock()
	name := p.Name()
	if _, dup := parsers[name]; dup {
		panic("pdfimport: Register called twice for parser " + name)
	}
	parsers[name] = p
}

// Names returns the sorted list of registered parsers.
func Names() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the parser registered under name.
func Lookup(name string) (Parser, error) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	p, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w for broker: %s", ErrNoParser, name)
	}
	return p, nil
}

// Detect returns the first parser, in name order, that accepts the document.
func Detect(pages fragment.Pages, extension string) (Parser, error) {
	extension = strings.TrimPrefix(strings.ToLower(extension), ".")
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if p.CanParse(pages, extension) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w for this %s document", ErrNoParser, extension)
}
