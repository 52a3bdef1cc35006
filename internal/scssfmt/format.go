// Package scssfmt formats single SCSS variable declarations the way the
// documentation site displays them: 80 columns, two space indentation and
// single quoted strings. Values that fit stay on one line; parenthesized
// lists and maps that do not are broken one entry per line.
package scssfmt

import (
	"strings"
)

// PrintWidth is the maximum line width before a group is broken.
const PrintWidth = 80

const indentUnit = "  "

// Format formats a `$name: value [!flags];` declaration. Input that is not
// a variable declaration is returned with normalized spacing. The result
// always ends with a newline.
func Format(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimSuffix(code, ";")

	name, value, ok := splitDeclaration(code)
	if !ok {
		return parse(code).flat() + ";\n"
	}
	value, flags := splitFlags(value)
	head := name + ": "
	tail := flags + ";"

	root := parse(value)
	flat := root.flat()
	if len(head)+len(flat)+len(tail) <= PrintWidth || !root.breakable() {
		return head + flat + tail + "\n"
	}
	return head + breakGroup(root.parts[0].group, PrintWidth, "") + tail + "\n"
}

func splitDeclaration(code string) (name, value string, ok bool) {
	if !strings.HasPrefix(code, "$") {
		return "", "", false
	}
	colon := strings.IndexByte(code, ':')
	if colon < 0 {
		return "", "", false
	}
	return strings.TrimSpace(code[:colon]), strings.TrimSpace(code[colon+1:]), true
}

func splitFlags(value string) (string, string) {
	var flags []string
	for {
		trimmed := strings.TrimSpace(value)
		i := strings.LastIndex(trimmed, "!")
		if i < 0 || strings.ContainsAny(trimmed[i:], " \t\n)'\"") {
			break
		}
		flag := trimmed[i:]
		if flag != "!default" && flag != "!global" {
			break
		}
		flags = append([]string{flag}, flags...)
		value = trimmed[:i]
	}
	if len(flags) == 0 {
		return strings.TrimSpace(value), ""
	}
	return strings.TrimSpace(value), " " + strings.Join(flags, " ")
}

// render prints n at indent within width columns. Only a value made of a
// single group can be broken.
func render(n *node, width int, indent string) string {
	flat := n.flat()
	if len(indent)+len(flat) <= width || !n.breakable() {
		return flat
	}
	return breakGroup(n.parts[0].group, width, indent)
}

// breakGroup prints one entry per line.
func breakGroup(g *group, width int, indent string) string {
	var b strings.Builder
	b.WriteString(g.open)
	b.WriteString("\n")
	inner := indent + indentUnit
	for i, item := range g.items {
		b.WriteString(inner)
		b.WriteString(renderItem(item, width, inner))
		if i < len(g.items)-1 || g.trailingComma {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString(g.close)
	return b.String()
}

// renderItem prints one group entry, breaking a nested group that ends the
// entry (as in `key: (…)`).
func renderItem(item *node, width int, indent string) string {
	flat := item.flat()
	if len(indent)+len(flat)+1 <= width {
		return flat
	}
	last := len(item.parts) - 1
	if last < 0 || item.parts[last].group == nil {
		return flat
	}
	prefix := (&node{parts: item.parts[:last]}).flat()
	if prefix != "" && !strings.HasSuffix(prefix, " ") {
		prefix += " "
	}
	nested := &node{parts: item.parts[last:]}
	return prefix + render(nested, width, indent)
}
