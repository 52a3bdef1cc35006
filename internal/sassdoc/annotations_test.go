package sassdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conneroisu/sassdocgen/internal/types"
)

func TestParseSymbolRef(t *testing.T) {
	tests := []struct {
		input        string
		expectedRef  SymbolRef
		expectedDesc string
		expectedOK   bool
	}{
		{"rmd-button", SymbolRef{Name: "rmd-button"}, "", true},
		{"$rmd-button-height - The height", SymbolRef{Name: "rmd-button-height", Kind: types.KindVariable}, "The height", true},
		{"{mixin} rmd-icon", SymbolRef{Name: "rmd-icon", Kind: types.KindMixin}, "", true},
		{"@function rmd-theme()", SymbolRef{Name: "rmd-theme", Kind: types.KindFunction}, "", true},
		{"", SymbolRef{}, "", false},
		{"{mixin}", SymbolRef{Kind: types.KindMixin}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ref, desc, ok := parseSymbolRef(tt.input)
			assert.Equal(t, tt.expectedOK, ok)
			if ok {
				assert.Equal(t, tt.expectedRef, ref)
				assert.Equal(t, tt.expectedDesc, desc)
			}
		})
	}
}

func TestSplitBlock_ExampleKeepsAtRules(t *testing.T) {
	lines := []string{
		"Description line",
		"@example scss - Usage",
		"  @include rmd-button;",
		"  @return 1;",
		"@include unknown-tag",
		"@access private",
	}

	description, annotations, unknown := splitBlock(lines)

	assert.Equal(t, []string{"Description line"}, description)
	assert.Empty(t, unknown)
	if assert.Len(t, annotations, 2) {
		assert.Equal(t, "example", annotations[0].name)
		assert.Equal(t, []string{"  @include rmd-button;", "  @return 1;", "@include unknown-tag"}, annotations[0].body)
		assert.Equal(t, "access", annotations[1].name)
	}
}

func TestSplitBlock_UnknownTags(t *testing.T) {
	_, annotations, unknown := splitBlock([]string{"@custom value", "continued", "@group button"})

	assert.Equal(t, []string{"custom"}, unknown)
	assert.Len(t, annotations, 2)

	var item Item
	for _, a := range annotations {
		a.apply(&item)
	}
	assert.Equal(t, []string{"button"}, item.Group)
}

func TestParseExample(t *testing.T) {
	tests := []struct {
		header   string
		body     []string
		expected types.Example
	}{
		{"scss - Usage", []string{"  a {", "    b: c;", "  }"}, types.Example{Type: "scss", Description: "Usage", Code: "a {\n  b: c;\n}"}},
		{"html", []string{"", "<div></div>", ""}, types.Example{Type: "html", Code: "<div></div>"}},
		{"Plain description here", nil, types.Example{Type: "scss", Description: "Plain description here"}},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExample(tt.header, tt.body))
		})
	}
}
