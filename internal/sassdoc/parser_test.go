package sassdoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/sassdocgen/internal/types"
)

const buttonSource = `////
/// @group button
////

/// The height for buttons.
/// @type Number
$rmd-button-height: 36px !default;

/// A computed value.
/// @see rmd-button
$rmd-button-icon-size: $rmd-button-height + 4 !default;

/// Internal toggle
$_rmd-button-toggle: (
  a: 1,
  b: (c, d),
) ;

/// Gets a button theme value.
///
/// @param {String} $theme-style - One of the theme styles
/// @param {Color} $fallback [null] - An optional fallback
/// @return {Color} the theme value
/// @throw when the style is invalid
/// @example scss - Example Usage SCSS
///   .my-button {
///     color: rmd-button-theme(color);
///   }
/// @example html - Example Usage SCSS
///   <button class="my-button"></button>
@function rmd-button-theme($theme-style, $fallback: null) {
  @if not map-has-key($rmd-button-theme-values, $theme-style) {
    @error 'Invalid button theme style';
  }
  @return map-get($rmd-button-theme-values, $theme-style);
}

/// Creates the button styles.
/// @access private
/// @requires rmd-button-theme
/// @link https://example.com Button guidelines
@mixin rmd-button {
  // rmd-button-theme(ignored) in a comment
  height: $rmd-button-height;
  color: rmd-button-theme(color);
  @include rmd-icon;
}

/// @access private
/// @group icon
@mixin rmd-icon {
  display: block;
}
`

func parseButton(t *testing.T) []*Item {
	t.Helper()
	p := NewParser(nil, nil)
	items, err := p.ParseFile("button/src/_mixins.scss", buttonSource)
	require.NoError(t, err)
	p.Link(items)
	return items
}

func findItem(t *testing.T, items []*Item, name string, kind types.Kind) *Item {
	t.Helper()
	for _, item := range items {
		if item.Context.Name == name && item.Context.Kind == kind {
			return item
		}
	}
	t.Fatalf("item %s %s not found", kind, name)
	return nil
}

func TestParser_Variables(t *testing.T) {
	items := parseButton(t)
	require.Len(t, items, 6)

	tests := []struct {
		name          string
		expectedValue string
		expectedScope string
		expectedType  string
		expectedAcc   string
	}{
		{"rmd-button-height", "36px", ScopeDefault, "Number", AccessPublic},
		{"rmd-button-icon-size", "$rmd-button-height + 4", ScopeDefault, "", AccessPublic},
		{"_rmd-button-toggle", "(\n  a: 1,\n  b: (c, d),\n)", ScopePrivate, "", AccessPrivate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := findItem(t, items, tt.name, types.KindVariable)
			assert.Equal(t, tt.expectedValue, item.Context.Value)
			assert.Equal(t, tt.expectedScope, item.Context.Scope)
			assert.Equal(t, tt.expectedType, item.Type)
			assert.Equal(t, tt.expectedAcc, item.Access)
			assert.Equal(t, []string{"button"}, item.Group)
			assert.Equal(t, "_mixins.scss", item.File.Name)
		})
	}
}

func TestParser_Function(t *testing.T) {
	items := parseButton(t)
	fn := findItem(t, items, "rmd-button-theme", types.KindFunction)

	assert.Equal(t, "Gets a button theme value.", fn.Description)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, types.Parameter{Type: "String", Name: "theme-style", Description: "One of the theme styles"}, fn.Parameters[0])
	assert.Equal(t, types.Parameter{Type: "Color", Name: "fallback", Default: "null", Description: "An optional fallback"}, fn.Parameters[1])
	require.NotNil(t, fn.Return)
	assert.Equal(t, "Color", fn.Return.Type)
	assert.Equal(t, []string{"when the style is invalid", "Invalid button theme style"}, fn.Throw)
	assert.Contains(t, fn.Context.Code, "@return map-get($rmd-button-theme-values, $theme-style);")

	require.Len(t, fn.Examples, 2)
	assert.Equal(t, types.Example{
		Type:        "scss",
		Description: "Example Usage SCSS",
		Code:        ".my-button {\n  color: rmd-button-theme(color);\n}",
	}, fn.Examples[0])
	assert.Equal(t, "html", fn.Examples[1].Type)
	assert.Equal(t, `<button class="my-button"></button>`, fn.Examples[1].Code)
}

func TestParser_MixinAndLinks(t *testing.T) {
	items := parseButton(t)
	mixin := findItem(t, items, "rmd-button", types.KindMixin)

	assert.True(t, mixin.IsPrivate())
	assert.Equal(t, []types.Link{{URL: "https://example.com", Caption: "Button guidelines"}}, mixin.Links)

	var required []types.SymbolKey
	for _, r := range mixin.Require {
		required = append(required, types.SymbolKey{Name: r.Name, Kind: r.Kind})
	}
	assert.Equal(t, []types.SymbolKey{
		{Name: "rmd-button-theme", Kind: types.KindFunction},
		{Name: "rmd-button-height", Kind: types.KindVariable},
		{Name: "rmd-icon", Kind: types.KindMixin},
	}, required)
	assert.False(t, mixin.Require[0].Autofill)
	assert.True(t, mixin.Require[1].Autofill)

	icon := findItem(t, items, "rmd-icon", types.KindMixin)
	assert.Equal(t, "icon", icon.PrimaryGroup())
	assert.Equal(t, []See{{Context: SymbolRef{Name: "rmd-button", Kind: types.KindMixin}}}, icon.UsedBy)

	size := findItem(t, items, "rmd-button-icon-size", types.KindVariable)
	require.Len(t, size.See, 1)
	assert.Equal(t, SymbolRef{Name: "rmd-button", Kind: types.KindMixin}, size.See[0].Context)
}

func TestParser_VariableValueComments(t *testing.T) {
	source := "/// Spacing map\n$rmd-map: (\n  a: 1px, // first; with a semicolon\n  /* second */ b: 2px,\n) !default;\n"

	items, err := NewParser(nil, nil).ParseFile("a.scss", source)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "rmd-map", items[0].Context.Name)
	assert.Equal(t, ScopeDefault, items[0].Context.Scope)
	assert.NotContains(t, items[0].Context.Value, "first")
	assert.NotContains(t, items[0].Context.Value, "second")
	assert.Contains(t, items[0].Context.Value, "b: 2px")
}

func TestParser_DefaultsAndErrors(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		expectError bool
		expectCount int
	}{
		{"no group", "/// Docs\n$a: 1;\n", false, 1},
		{"undocumented declarations", "$a: 1;\n@mixin b { }\n", false, 0},
		{"placeholder skipped", "/// Docs\n%placeholder { color: red; }\n", false, 0},
		{"unterminated mixin", "/// Docs\n@mixin broken {\n  color: red;\n", true, 0},
		{"function without params", "/// Docs\n@function broken { @return 1; }\n", true, 0},
		{"empty variable", "/// Docs\n$a: !default;\n", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := NewParser(nil, nil).ParseFile("a.scss", tt.source)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.expectCount)
			for _, item := range items {
				assert.Equal(t, DefaultGroup, item.PrimaryGroup())
				assert.Equal(t, AccessPublic, item.Access)
			}
		})
	}
}

func TestParser_ParseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "button", "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "icon", "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button", "src", "_mixins.scss"),
		[]byte("/// @group button\n/// @require rmd-icon\n@mixin rmd-button { }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon", "src", "_mixins.scss"),
		[]byte("/// @group icon\n@mixin rmd-icon { }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icon", "src", "_skip.scss"),
		[]byte("/// @group icon\n$skipped: 1;\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RCFileName),
		[]byte("exclude:\n  - \"_skip.scss\"\ngroups:\n  icon: Icons\n"), 0o644))

	rc, err := LoadRC(dir)
	require.NoError(t, err)

	items, err := NewParser(rc, nil).ParseDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "button/src/_mixins.scss", items[0].File.Path)
	assert.Equal(t, types.KindMixin, items[0].Require[0].Kind)
	assert.Equal(t, "Icons", items[1].GroupName["icon"])
	assert.Equal(t, []See{{Context: SymbolRef{Name: "rmd-button", Kind: types.KindMixin}}}, items[1].UsedBy)
}

func TestParseDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.scss"), []byte("/// a\n$a: 1;\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil, nil).ParseDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
