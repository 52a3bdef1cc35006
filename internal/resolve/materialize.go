package resolve

import (
	"fmt"
	"regexp"

	"github.com/conneroisu/sassdocgen/internal/scssfmt"
	"github.com/conneroisu/sassdocgen/internal/types"
)

var (
	leadingZero     = regexp.MustCompile(`([^0-9])0\.`)
	trailingNewline = regexp.MustCompile(`;\r?\n$`)
)

// Materialize writes the resolved value of every variable record in every
// group and renders its final code.
func Materialize(docs *types.GroupedDocs, lookup *Lookup) {
	for _, name := range docs.Names() {
		group, _ := docs.Get(name)
		for i := range group.Variables {
			v := &group.Variables[i]
			entry, ok := lookup.Get(v.Name)
			if !ok {
				continue
			}
			v.ResolvedValue = entry.ResolvedValue
			v.Code = Code(entry.Name, entry.ResolvedValue, entry.IsDefault)
		}
	}
}

// Code renders a resolved variable declaration for display.
func Code(name, value string, isDefault bool) string {
	code := fmt.Sprintf("$%s: %s%s;", name, value, defaultFlag(isDefault))
	code = scssfmt.Format(code)
	code = leadingZero.ReplaceAllString(code, "$1.")
	return trailingNewline.ReplaceAllString(code, ";")
}

// SourceCode renders a variable declaration as written in the source.
func SourceCode(name, value string, isDefault bool) string {
	return fmt.Sprintf("$%s: %s%s;", name, value, defaultFlag(isDefault))
}

func defaultFlag(isDefault bool) string {
	if isDefault {
		return " !default"
	}
	return ""
}
