// Package fragment models the text of a PDF document as extracted page by
// page: an ordered list of text fragments with no reliable word or number
// boundaries.
//
// Fields are located with anchors: a fragment with a known value whose
// position is used as a coordinate to read neighbouring fragments at a fixed
// offset. See [Anchor] and [Field].
package fragment

import "strings"

// Sequence is the document wide ordered list of fragments.
//
// Order is the reading order of the document, it is the only structure
// available. A Sequence is never modified once built.
type Sequence []string

// Pages is the per page form of a document, as produced by a text extractor.
type Pages [][]string

// Flatten concatenates all pages in order into a single Sequence.
func (p Pages) Flatten() Sequence {
	n := 0
	for _, page := range p {
		n += len(page)
	}
	seq := make(Sequence, 0, n)
	for _, page := range p {
		seq = append(seq, page...)
	}
	return seq
}

// First returns the first page as a Sequence, or an empty one.
func (p Pages) First() Sequence {
	if len(p) == 0 {
		return nil
	}
	return Sequence(p[0])
}

// Len returns the total number of fragments in all pages.
func (p Pages) Len() int {
	n := 0
	for _, page := range p {
		n += len(page)
	}
	return n
}

// At returns the fragment at i, and false if i is out of range.
func (s Sequence) At(i int) (string, bool) {
	if i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}

// Index returns the index of the first fragment at or after from that
// matches m, or -1.
func (s Sequence) Index(from int, m Matcher) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s); i++ {
		if m.Match(s[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether any fragment is exactly text.
func (s Sequence) Contains(text string) bool {
	return s.Index(0, Exact(text)) >= 0
}

// Join concatenates count consecutive fragments starting at start.
//
// Fragments out of range are ignored.
func Join(s Sequence, start, count int) string {
	var b strings.Builder
	for i := start; i < start+count; i++ {
		if f, ok := s.At(i); ok {
			b.WriteString(f)
		}
	}
	return b.String()
}

// Cluttered reports whether the text want is found split over exactly count
// fragments, starting at the first fragment equal to head.
func Cluttered(s Sequence, head string, count int, want string) bool {
	start := s.Index(0, Exact(head))
	if start < 0 || start+count > len(s) {
		return false
	}
	return Join(s, start, count) == want
}

// Matcher selects a fragment either by its exact value or by a substring.
type Matcher struct {
	Text    string
	Partial bool // match fragments containing Text instead of equal to it.
}

// Exact returns a Matcher for fragments equal to text.
func Exact(text string) Matcher { return Matcher{Text: text} }

// Partial returns a Matcher for fragments containing text.
func Partial(text string) Matcher { return Matcher{Text: text, Partial: true} }

// Match reports whether fragment f is selected.
func (m Matcher) Match(f string) bool {
	if m.Partial {
		return strings.Contains(f, m.Text)
	}
	return f == m.Text
}

func (m Matcher) String() string {
	if m.Partial {
		return "*" + m.Text + "*"
	}
	return m.Text
}
