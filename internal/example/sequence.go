// Package example pairs and compiles the @example blocks of functions and
// mixins.
package example

import (
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Sequence yields examples in order with one element of lookahead.
type Sequence struct {
	examples []types.Example
	pos      int
}

// NewSequence creates a sequence over examples.
func NewSequence(examples []types.Example) *Sequence {
	return &Sequence{examples: examples}
}

// Next consumes the next example.
func (s *Sequence) Next() (types.Example, bool) {
	if s.pos >= len(s.examples) {
		return types.Example{}, false
	}
	s.pos++
	return s.examples[s.pos-1], true
}

// Peek returns the next example without consuming it.
func (s *Sequence) Peek() (types.Example, bool) {
	if s.pos >= len(s.examples) {
		return types.Example{}, false
	}
	return s.examples[s.pos], true
}

// Index is the 1-based position of the example last returned by Next.
func (s *Sequence) Index() int {
	return s.pos
}

// Pair is an example together with the html example it absorbed, if any.
type Pair struct {
	// Index is the 1-based position of Example in the declared list.
	Index   int
	Example types.Example
	HTML    *types.Example
}

// Pairs groups examples: an scss example directly followed by an html
// example with the same description absorbs that html example.
func Pairs(examples []types.Example) []Pair {
	seq := NewSequence(examples)
	var pairs []Pair
	for ex, ok := seq.Next(); ok; ex, ok = seq.Next() {
		pair := Pair{Index: seq.Index(), Example: ex}
		if next, ok := seq.Peek(); ok && pairsWith(ex, next) {
			seq.Next()
			html := next
			pair.HTML = &html
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func pairsWith(current, next types.Example) bool {
	return current.Type == "scss" && next.Type == "html" && next.Description == current.Description
}
