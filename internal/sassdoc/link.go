package sassdoc

import (
	"regexp"
	"strings"

	"github.com/conneroisu/sassdocgen/internal/types"
)

var (
	bodyReference = regexp.MustCompile(`@include\s+([\w-]+)|\$([\w-]+)|([\w-]+)\(`)
	bodyThrow     = regexp.MustCompile(`@error\s+(?:'([^']*)'|"([^"]*)")`)
)

// Link completes cross references once every item of a run is known: it
// autofills requirements from bodies, infers the kind of untyped
// references and fills usedBy as the inverse of require.
func (p *Parser) Link(items []*Item) {
	byName := make(map[string][]*Item)
	byKey := make(map[types.SymbolKey][]*Item)
	for _, item := range items {
		byName[item.Context.Name] = append(byName[item.Context.Name], item)
		byKey[item.Key()] = append(byKey[item.Key()], item)
	}
	exists := func(name string, kind types.Kind) bool {
		return len(byKey[types.SymbolKey{Name: name, Kind: kind}]) > 0
	}
	infer := func(name string) types.Kind {
		for _, kind := range []types.Kind{types.KindFunction, types.KindMixin, types.KindVariable} {
			if exists(name, kind) {
				return kind
			}
		}
		return types.KindFunction
	}

	for _, item := range items {
		for i := range item.See {
			if item.See[i].Context.Kind == "" {
				item.See[i].Context.Kind = infer(item.See[i].Context.Name)
			}
		}
		for i := range item.UsedBy {
			if item.UsedBy[i].Context.Kind == "" {
				item.UsedBy[i].Context.Kind = infer(item.UsedBy[i].Context.Name)
			}
		}
		for i := range item.Require {
			if item.Require[i].Kind == "" {
				item.Require[i].Kind = infer(item.Require[i].Name)
			}
		}
		if p.rc.AutofillEnabled() && item.Context.Kind != types.KindVariable {
			autofill(item, exists)
		}
	}

	for _, item := range items {
		self := SymbolRef{Name: item.Context.Name, Kind: item.Context.Kind}
		for _, req := range item.Require {
			for _, target := range byKey[types.SymbolKey{Name: req.Name, Kind: req.Kind}] {
				if !hasUsedBy(target, self) {
					target.UsedBy = append(target.UsedBy, See{Context: self})
				}
			}
		}
	}
}

// autofill appends the documented symbols used by a function or mixin body
// and the messages of its @error statements.
func autofill(item *Item, exists func(string, types.Kind) bool) {
	params := make(map[string]bool, len(item.Parameters))
	for _, p := range item.Parameters {
		params[strings.TrimSuffix(p.Name, "...")] = true
	}
	seen := make(map[types.SymbolKey]bool, len(item.Require))
	for _, req := range item.Require {
		seen[types.SymbolKey{Name: req.Name, Kind: req.Kind}] = true
	}
	seen[item.Key()] = true

	code := stripComments(item.Context.Code)
	for _, m := range bodyReference.FindAllStringSubmatch(code, -1) {
		var key types.SymbolKey
		switch {
		case m[1] != "":
			key = types.SymbolKey{Name: m[1], Kind: types.KindMixin}
		case m[2] != "":
			if params[m[2]] {
				continue
			}
			key = types.SymbolKey{Name: m[2], Kind: types.KindVariable}
		default:
			key = types.SymbolKey{Name: m[3], Kind: types.KindFunction}
		}
		if seen[key] || !exists(key.Name, key.Kind) {
			continue
		}
		seen[key] = true
		item.Require = append(item.Require, Require{Name: key.Name, Kind: key.Kind, Autofill: true})
	}

	for _, m := range bodyThrow.FindAllStringSubmatch(code, -1) {
		msg := m[1] + m[2]
		if msg != "" && !contains(item.Throw, msg) {
			item.Throw = append(item.Throw, msg)
		}
	}
}

func hasUsedBy(item *Item, ref SymbolRef) bool {
	for _, u := range item.UsedBy {
		if u.Context == ref {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// stripComments removes comments while keeping string literals intact.
func stripComments(src string) string {
	var b strings.Builder
	s := &scanner{src: src}
	for s.pos < len(src) {
		c := src[s.pos]
		if c == '/' && s.pos+1 < len(src) && (src[s.pos+1] == '/' || src[s.pos+1] == '*') {
			start := s.pos
			if s.skipTrivia() {
				if strings.Contains(src[start:s.pos], "\n") {
					b.WriteByte('\n')
				}
				continue
			}
		}
		if c == '"' || c == '\'' {
			start := s.pos
			s.skipTrivia()
			b.WriteString(src[start:s.pos])
			continue
		}
		b.WriteByte(c)
		s.pos++
	}
	return b.String()
}
