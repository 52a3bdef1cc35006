// Package types provides the documentation data model shared by the pipeline
// stages. It is kept separate to avoid circular dependencies between the
// parser, the reference index, the formatter and the emitter.
package types

// Kind is the declaration kind of a documented Sass symbol.
type Kind string

const (
	KindVariable Kind = "variable"
	KindFunction Kind = "function"
	KindMixin    Kind = "mixin"
)

// Valid reports whether k is one of the documented declaration kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindVariable, KindFunction, KindMixin:
		return true
	default:
		return false
	}
}

// Reference is the canonical identity of a documented symbol. The pair
// (Name, Kind) is the lookup key.
type Reference struct {
	Name    string `json:"name" yaml:"name"`
	Kind    Kind   `json:"type" yaml:"type"`
	Group   string `json:"group" yaml:"group"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Private bool   `json:"private" yaml:"private"`
}

// Key returns the (name, kind) lookup key of the reference.
func (r Reference) Key() SymbolKey {
	return SymbolKey{Name: r.Name, Kind: r.Kind}
}

// SymbolKey identifies a symbol by name and kind.
type SymbolKey struct {
	Name string
	Kind Kind
}

// String renders the key the way it is written in Sass source.
func (k SymbolKey) String() string {
	if k.Kind == KindVariable {
		return "$" + k.Name
	}
	return string(k.Kind) + " " + k.Name
}

// LinkTo is a resolved cross reference ready for serialization.
type LinkTo struct {
	Name        string `json:"name"`
	Type        Kind   `json:"type"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// Link is a free-text @link entry.
type Link struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}
