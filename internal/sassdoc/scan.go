package sassdoc

import (
	"fmt"
	"strings"
)

// scanner walks SCSS source skipping strings and comments so delimiters
// inside them are not counted.
type scanner struct {
	src string
	pos int
}

// skipTrivia advances past a string literal or comment starting at pos.
// It reports whether anything was skipped.
func (s *scanner) skipTrivia() bool {
	c := s.src[s.pos]
	switch {
	case c == '"' || c == '\'':
		s.pos++
		for s.pos < len(s.src) {
			switch s.src[s.pos] {
			case '\\':
				s.pos += 2
				continue
			case c:
				s.pos++
				return true
			case '\n':
				// Unterminated string, stop at end of line.
				return true
			}
			s.pos++
		}
		return true
	case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' && !s.inURL():
		end := strings.IndexByte(s.src[s.pos:], '\n')
		if end < 0 {
			s.pos = len(s.src)
		} else {
			s.pos += end
		}
		return true
	case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
		end := strings.Index(s.src[s.pos+2:], "*/")
		if end < 0 {
			s.pos = len(s.src)
		} else {
			s.pos += end + 4
		}
		return true
	}
	return false
}

// inURL reports whether pos sits inside an unquoted url( ) token, where
// `//` is part of the value.
func (s *scanner) inURL() bool {
	open := strings.LastIndex(s.src[:s.pos], "url(")
	if open < 0 {
		return false
	}
	return !strings.ContainsAny(s.src[open:s.pos], ")\n")
}

// matching returns the index of the delimiter closing the one at start.
func matching(src string, start int) (int, error) {
	if start >= len(src) {
		return 0, fmt.Errorf("no opening delimiter at offset %d", start)
	}
	s := &scanner{src: src, pos: start}
	var stack []byte
	for s.pos < len(src) {
		if s.skipTrivia() {
			continue
		}
		c := src[s.pos]
		switch c {
		case '(', '[', '{':
			stack = append(stack, closerOf(c))
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, fmt.Errorf("unexpected %q at offset %d", c, s.pos)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s.pos, nil
			}
		}
		s.pos++
	}
	return 0, fmt.Errorf("unterminated %q opened at offset %d", src[start], start)
}

// statementEnd returns the index of the `;` that ends the statement
// starting at start, or of the `}` closing the enclosing block, or len(src).
func statementEnd(src string, start int) int {
	s := &scanner{src: src, pos: start}
	depth := 0
	for s.pos < len(src) {
		if s.skipTrivia() {
			continue
		}
		switch src[s.pos] {
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return s.pos
			}
			depth--
		case ';':
			if depth == 0 {
				return s.pos
			}
		}
		s.pos++
	}
	return len(src)
}

// indexTopLevel returns the first index of c outside strings, comments and
// nested delimiters, or -1.
func indexTopLevel(src string, c byte) int {
	s := &scanner{src: src}
	depth := 0
	for s.pos < len(src) {
		if s.skipTrivia() {
			continue
		}
		switch ch := src[s.pos]; {
		case ch == c && depth == 0:
			return s.pos
		case ch == '(' || ch == '[' || ch == '{':
			depth++
		case ch == ')' || ch == ']' || ch == '}':
			depth--
		}
		s.pos++
	}
	return -1
}

func closerOf(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func lineAt(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}
