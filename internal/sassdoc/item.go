// Package sassdoc parses SassDoc comments (`///` blocks) and the variable,
// function and mixin declarations they document into raw items.
//
// The parser performs no visibility filtering: private items are returned
// with Access set to "private" and are dropped further down the pipeline.
package sassdoc

import (
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Access levels.
const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

// Variable scopes as reported by SassDoc.
const (
	ScopeDefault = "default"
	ScopeGlobal  = "global"
	ScopePrivate = "private"
)

// DefaultGroup is the group of items that never declare one.
const DefaultGroup = "undefined"

// Item is one documented declaration.
type Item struct {
	Description string
	Context     Context
	Access      string
	Group       []string
	GroupName   map[string]string
	File        File
	// Type is the @type annotation of a variable.
	Type       string
	Links      []types.Link
	See        []See
	UsedBy     []See
	Require    []Require
	Parameters []types.Parameter
	Return     *types.Return
	Throw      []string
	Examples   []types.Example
	Since      []string
	Deprecated string
	Todo       []string
	Alias      []string
}

// Context describes the declaration following the comment block.
type Context struct {
	Kind  types.Kind
	Name  string
	Value string
	Scope string
	// Code is the body between the braces of a function or mixin.
	Code string
	Line Lines
}

// Lines are 1-based source lines spanned by the declaration.
type Lines struct {
	Start int
	End   int
}

// File is where an item was declared, relative to the parsed directory.
type File struct {
	Path string
	Name string
}

// SymbolRef names a documented symbol.
type SymbolRef struct {
	Name string
	Kind types.Kind
}

// See is a @see or @usedBy entry. The target is nested under Context.
type See struct {
	Description string
	Context     SymbolRef
}

// Require is a @require entry. The target is carried directly.
type Require struct {
	Name        string
	Kind        types.Kind
	Description string
	// Autofill marks requirements discovered from the declaration body.
	Autofill bool
}

// Key returns the item's (name, kind) identity.
func (i *Item) Key() types.SymbolKey {
	return types.SymbolKey{Name: i.Context.Name, Kind: i.Context.Kind}
}

// PrimaryGroup returns the first declared group.
func (i *Item) PrimaryGroup() string {
	if len(i.Group) == 0 {
		return DefaultGroup
	}
	return i.Group[0]
}

// IsPrivate reports whether the item's access is private.
func (i *Item) IsPrivate() bool {
	return i.Access == AccessPrivate
}
