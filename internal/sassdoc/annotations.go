package sassdoc

import (
	"regexp"
	"strings"

	"github.com/conneroisu/sassdocgen/internal/types"
)

// annotation is one `@tag` and the lines that belong to it.
type annotation struct {
	name  string
	first string
	body  []string
}

// Known annotation names. A line starting with any other `@word` does not
// open an annotation.
var knownAnnotations = map[string]bool{
	"access": true, "alias": true, "author": true, "content": true,
	"deprecated": true, "example": true, "group": true, "ignore": true,
	"link": true, "source": true, "name": true, "output": true,
	"param": true, "parameter": true, "arg": true, "argument": true,
	"prop": true, "property": true, "require": true, "requires": true,
	"return": true, "returns": true, "see": true, "since": true,
	"throw": true, "throws": true, "exception": true, "todo": true,
	"type": true, "usedBy": true, "usedby": true,
}

var annotationLine = regexp.MustCompile(`^@([A-Za-z]+)\b\s?(.*)$`)

// splitBlock separates the free-text description from the annotations.
// Lines inside an @example only open a new annotation when they are not
// indented, so Sass at-rules in example code stay code.
func splitBlock(lines []string) (description []string, annotations []annotation, unknown []string) {
	var current *annotation
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		m := annotationLine.FindStringSubmatch(trimmed)
		opens := m != nil && knownAnnotations[m[1]]
		if opens && current != nil && current.name == "example" && trimmed != line {
			opens = false
		}
		if m != nil && !knownAnnotations[m[1]] && (current == nil || current.name != "example") {
			unknown = append(unknown, m[1])
			annotations = append(annotations, annotation{name: "@" + m[1]})
			current = &annotations[len(annotations)-1]
			continue
		}
		switch {
		case opens:
			annotations = append(annotations, annotation{name: m[1], first: m[2]})
			current = &annotations[len(annotations)-1]
		case current != nil:
			current.body = append(current.body, line)
		default:
			description = append(description, line)
		}
	}
	return description, annotations, unknown
}

// text joins an annotation's first line and continuation lines.
func (a annotation) text() string {
	parts := append([]string{a.first}, a.body...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// apply copies the parsed annotation into the item.
func (a annotation) apply(item *Item) {
	switch a.name {
	case "access":
		item.Access = firstWord(a.text())
	case "group":
		if g := strings.ToLower(strings.TrimSpace(a.first)); g != "" {
			item.Group = append(item.Group, g)
		}
	case "type":
		item.Type = strings.Trim(strings.TrimSpace(a.first), "{}")
	case "name":
		if n := strings.TrimPrefix(firstWord(a.first), "$"); n != "" {
			item.Context.Name = n
		}
	case "alias":
		item.Alias = append(item.Alias, firstWord(a.first))
	case "since":
		item.Since = append(item.Since, a.text())
	case "deprecated":
		item.Deprecated = a.text()
		if item.Deprecated == "" {
			item.Deprecated = "deprecated"
		}
	case "todo":
		item.Todo = append(item.Todo, a.text())
	case "link", "source":
		url, caption, _ := strings.Cut(a.text(), " ")
		if url != "" {
			item.Links = append(item.Links, types.Link{URL: url, Caption: strings.TrimSpace(caption)})
		}
	case "see":
		if ref, desc, ok := parseSymbolRef(a.text()); ok {
			item.See = append(item.See, See{Description: desc, Context: ref})
		}
	case "usedBy", "usedby":
		if ref, desc, ok := parseSymbolRef(a.text()); ok {
			item.UsedBy = append(item.UsedBy, See{Description: desc, Context: ref})
		}
	case "require", "requires":
		if ref, desc, ok := parseSymbolRef(a.text()); ok {
			item.Require = append(item.Require, Require{Name: ref.Name, Kind: ref.Kind, Description: desc})
		}
	case "param", "parameter", "arg", "argument":
		if p, ok := parseParameter(a.text()); ok {
			item.Parameters = append(item.Parameters, p)
		}
	case "return", "returns":
		typ, desc := splitType(a.text())
		item.Return = &types.Return{Type: typ, Description: desc}
	case "throw", "throws", "exception":
		if t := a.text(); t != "" {
			item.Throw = append(item.Throw, t)
		}
	case "example":
		item.Examples = append(item.Examples, parseExample(a.first, a.body))
	}
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitType splits a leading `{Type}` off s.
func splitType(s string) (typ, rest string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return "", s
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return "", s
	}
	return strings.TrimSpace(s[1:end]), strings.TrimSpace(s[end+1:])
}

// trimDash drops the ` - ` separator SassDoc allows before descriptions.
func trimDash(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSpace(s)
}

var kindPrefixes = map[string]types.Kind{
	"@mixin":    types.KindMixin,
	"@function": types.KindFunction,
	"mixin":     types.KindMixin,
	"function":  types.KindFunction,
	"variable":  types.KindVariable,
	"var":       types.KindVariable,
}

// parseSymbolRef reads `[{kind}] [@mixin|@function] [$]name [- description]`.
// The kind is left empty when the text does not say; the parser infers it
// once every item is known.
func parseSymbolRef(s string) (SymbolRef, string, bool) {
	braced, rest := splitType(s)
	ref := SymbolRef{}
	if k, ok := kindPrefixes[strings.ToLower(braced)]; ok {
		ref.Kind = k
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ref, "", false
	}
	if k, ok := kindPrefixes[fields[0]]; ok && strings.HasPrefix(fields[0], "@") {
		ref.Kind = k
		fields = fields[1:]
		if len(fields) == 0 {
			return ref, "", false
		}
	}
	name := fields[0]
	if strings.HasPrefix(name, "$") {
		ref.Kind = types.KindVariable
		name = name[1:]
	}
	name = strings.TrimSuffix(name, "()")
	if name == "" {
		return ref, "", false
	}
	ref.Name = name
	return ref, trimDash(strings.Join(fields[1:], " ")), true
}

// parseParameter reads `{Type} $name [default] - description`.
func parseParameter(s string) (types.Parameter, bool) {
	typ, rest := splitType(s)
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '['
	})
	if end < 0 {
		end = len(rest)
	}
	name := strings.TrimPrefix(rest[:end], "$")
	if name == "" {
		return types.Parameter{}, false
	}
	rest = strings.TrimLeft(rest[end:], " \t")
	p := types.Parameter{Type: typ, Name: name}
	if strings.HasPrefix(rest, "[") {
		if end, err := matching(rest, 0); err == nil {
			p.Default = strings.TrimSpace(rest[1:end])
			rest = rest[end+1:]
		}
	}
	p.Description = trimDash(rest)
	return p, true
}

var exampleHeader = regexp.MustCompile(`^\s*([\w-]+)?\s*(?:-\s*(.*))?$`)

// parseExample reads `@example [type] [- description]` followed by code.
func parseExample(header string, body []string) types.Example {
	ex := types.Example{Type: "scss"}
	if m := exampleHeader.FindStringSubmatch(header); m != nil {
		if m[1] != "" {
			ex.Type = m[1]
		}
		ex.Description = strings.TrimSpace(m[2])
	} else {
		ex.Description = trimDash(header)
	}
	ex.Code = dedent(body)
	return ex
}

// dedent removes the common leading indentation and surrounding blank lines.
func dedent(lines []string) string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			out[i] = line[indent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(out, "\n")
}
