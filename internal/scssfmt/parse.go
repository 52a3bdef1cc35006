package scssfmt

import (
	"strings"
)

// node is a sequence of atoms and groups separated by spaces.
type node struct {
	parts []part
}

type part struct {
	atom  string
	group *group
	// space records whitespace before the part in the source.
	space bool
}

// group is a parenthesized or bracketed comma separated list.
type group struct {
	open, close   string
	items         []*node
	trailingComma bool
}

func (n *node) breakable() bool {
	return len(n.parts) == 1 && n.parts[0].group != nil && len(n.parts[0].group.items) > 1
}

// flat prints the node on one line.
func (n *node) flat() string {
	var b strings.Builder
	for i, p := range n.parts {
		if i > 0 && needsSpace(n.parts[i-1], p) {
			b.WriteString(" ")
		}
		if p.group != nil {
			b.WriteString(p.group.open)
			for j, item := range p.group.items {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(item.flat())
			}
			b.WriteString(p.group.close)
			continue
		}
		b.WriteString(p.atom)
	}
	return b.String()
}

func needsSpace(prev, p part) bool {
	if p.group == nil && (p.atom == ":" || p.atom == ",") {
		return false
	}
	if prev.group == nil && (prev.atom == ":" || prev.atom == ",") {
		return true
	}
	return p.space
}

type parser struct {
	src string
	pos int
}

func parse(src string) *node {
	p := &parser{src: src}
	return p.sequence(0)
}

// sequence reads parts until a comma or the closing delimiter.
func (p *parser) sequence(closer byte) *node {
	n := &node{}
	space := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			space = true
			p.pos++
			continue
		case p.atComment():
			p.skipComment()
			space = true
			continue
		case closer != 0 && (c == ',' || c == closer):
			return n
		case c == ',':
			n.parts = append(n.parts, part{atom: ","})
			p.pos++
		case c == '(' || c == '[':
			n.parts = append(n.parts, part{group: p.group(c), space: space})
		case c == '\'' || c == '"':
			n.parts = append(n.parts, part{atom: p.quoted(), space: space})
		case c == ':':
			// `a:b` inside maps is printed as `a: b`.
			n.parts = append(n.parts, part{atom: ":"})
			p.pos++
		default:
			n.parts = append(n.parts, part{atom: p.word(closer), space: space})
		}
		space = false
	}
	return n
}

func (p *parser) group(open byte) *group {
	closer := byte(')')
	if open == '[' {
		closer = ']'
	}
	g := &group{open: string(open), close: string(closer)}
	p.pos++
	for p.pos < len(p.src) {
		item := p.sequence(closer)
		if len(item.parts) > 0 {
			g.items = append(g.items, item)
		}
		if p.pos >= len(p.src) {
			break
		}
		c := p.src[p.pos]
		p.pos++
		if c == closer {
			break
		}
		// A comma directly before the closer is kept as a trailing comma.
		rest := strings.TrimLeft(p.src[p.pos:], " \t\r\n")
		if rest != "" && rest[0] == closer {
			g.trailingComma = true
		}
	}
	return g
}

// word reads an unquoted run. Function calls keep their argument list
// attached, as in `rgba(0, 0, 0, 0.5)`.
func (p *parser) word(closer byte) string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' || c == ':' || c == '\'' || c == '"' || c == '[' || (closer != 0 && c == closer) {
			break
		}
		if p.pos > start && p.atComment() {
			break
		}
		if c == '(' {
			if p.pos == start {
				break
			}
			p.pos = p.callEnd()
			continue
		}
		if c == ')' || c == ']' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		p.pos++
		return p.src[start:p.pos]
	}
	return p.src[start:p.pos]
}

// atComment reports whether a `//` or `/* */` comment starts at pos.
func (p *parser) atComment() bool {
	return p.src[p.pos] == '/' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '/' || p.src[p.pos+1] == '*')
}

// skipComment moves past the comment at pos. Comments are not printed.
func (p *parser) skipComment() {
	if p.src[p.pos+1] == '/' {
		if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
			p.pos += i
			return
		}
		p.pos = len(p.src)
		return
	}
	if i := strings.Index(p.src[p.pos+2:], "*/"); i >= 0 {
		p.pos += i + 4
		return
	}
	p.pos = len(p.src)
}

// callEnd returns the offset just past the argument list opening at pos.
func (p *parser) callEnd() int {
	depth := 0
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '\'', '"':
			q := p.src[i]
			for i++; i < len(p.src) && p.src[i] != q; i++ {
				if p.src[i] == '\\' {
					i++
				}
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(p.src)
}

// quoted reads a string literal and prefers single quotes.
func (p *parser) quoted() string {
	q := p.src[p.pos]
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] != q {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos < len(p.src) {
		p.pos++
	}
	literal := p.src[start:p.pos]
	if q == '"' && len(literal) >= 2 {
		body := literal[1 : len(literal)-1]
		if !strings.Contains(body, "'") {
			return "'" + strings.ReplaceAll(body, `\"`, `"`) + "'"
		}
	}
	return literal
}
