package fragment

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an anchor, or the fragment it points to, is not
// in the sequence.
var ErrNotFound = errors.New("anchor not found")

// Anchor locates one fragment: the first fragment selected by Match, moved by
// Offset positions.
type Anchor struct {
	Match  Matcher
	Offset int
}

// At returns an Anchor with an exact match and an offset.
func At(text string, offset int) Anchor { return Anchor{Match: Exact(text), Offset: offset} }

// Near returns an Anchor with a partial match and an offset.
func Near(text string, offset int) Anchor { return Anchor{Match: Partial(text), Offset: offset} }

// Resolve returns the fragment designated by a, and false if the anchor is
// missing or the offset falls outside the sequence.
func (a Anchor) Resolve(s Sequence) (string, bool) {
	i := s.Index(0, a.Match)
	if i < 0 {
		return "", false
	}
	return s.At(i + a.Offset)
}

func (a Anchor) String() string { return fmt.Sprintf("%s%+d", a.Match, a.Offset) }

// Field is one row of an extraction table: a named value read from the
// fragment designated by Anchor and converted by Extract.
type Field[T any] struct {
	Name    string
	Anchor  Anchor
	Extract func(string) (T, error)
}

// Lookup resolves f in s.
//
// It returns ok=false, and no error, when the anchor is absent: callers decide
// whether the field is required. A fragment that is found but cannot be
// converted is an error.
func Lookup[T any](s Sequence, f Field[T]) (v T, ok bool, err error) {
	text, ok := f.Anchor.Resolve(s)
	if !ok {
		return v, false, nil
	}
	v, err = f.Extract(text)
	if err != nil {
		return v, true, fmt.Errorf("field %s at %s: %w", f.Name, f.Anchor, err)
	}
	return v, true, nil
}

// Require is like Lookup but a missing anchor is an error wrapping ErrNotFound.
func Require[T any](s Sequence, f Field[T]) (T, error) {
	v, ok, err := Lookup(s, f)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, fmt.Errorf("field %s: %w: %s", f.Name, ErrNotFound, f.Anchor)
	}
	return v, nil
}

// Text is the identity extractor.
func Text(s string) (string, error) { return s, nil }
