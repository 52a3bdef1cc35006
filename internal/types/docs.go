package types

// Parameter describes a single @param of a function or mixin.
type Parameter struct {
	Type        string `json:"type,omitempty"`
	Name        string `json:"name"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Return describes the @return of a function.
type Return struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Example is a raw @example block as written in the doc comment.
type Example struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CompiledExample is an example ready for display. CompiledCode is nil for
// non-scss examples. HTMLExample is only set when an html example directly
// follows an scss example with the same description.
type CompiledExample struct {
	Type         string  `json:"type"`
	Code         string  `json:"code"`
	CompiledCode *string `json:"compiledCode"`
	Description  string  `json:"description"`
	HTMLExample  string  `json:"htmlExample,omitempty"`
}

// Base holds the fields shared by every formatted documentation record.
type Base struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	File        string   `json:"file"`
	Group       string   `json:"group"`
	Links       []Link   `json:"links"`
	See         []LinkTo `json:"see"`
	UsedBy      []LinkTo `json:"usedBy"`
	Requires    []LinkTo `json:"requires"`
}

// VariableDoc is the record emitted for a documented variable.
type VariableDoc struct {
	Base
	Code          string `json:"code"`
	Value         string `json:"value"`
	ResolvedValue string `json:"resolvedValue"`
}

// CallableDoc is the record emitted for a documented mixin, and the shared
// part of a documented function.
type CallableDoc struct {
	Base
	Code       string            `json:"code"`
	Throws     []string          `json:"throws"`
	Examples   []CompiledExample `json:"examples"`
	Parameters []Parameter       `json:"parameters"`
}

// FunctionDoc is the record emitted for a documented function.
type FunctionDoc struct {
	CallableDoc
	Returns *Return `json:"returns,omitempty"`
}

// VariableLookup is one entry of the global variable lookup table.
type VariableLookup struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Value         string `json:"value"`
	ResolvedValue string `json:"resolvedValue"`
	IsDefault     bool   `json:"isDefault"`
}

// GroupDocs is the unit of serialization: everything documented for one group.
type GroupDocs struct {
	Functions []FunctionDoc `json:"functions"`
	Mixins    []CallableDoc `json:"mixins"`
	Variables []VariableDoc `json:"variables"`
}

// NewGroupDocs returns a GroupDocs with empty, non-nil lists so that the
// serialized form always contains arrays.
func NewGroupDocs() *GroupDocs {
	return &GroupDocs{
		Functions: make([]FunctionDoc, 0),
		Mixins:    make([]CallableDoc, 0),
		Variables: make([]VariableDoc, 0),
	}
}

// GroupedDocs maps group names to their documentation while remembering the
// order in which groups were first seen.
type GroupedDocs struct {
	order  []string
	groups map[string]*GroupDocs
}

// NewGroupedDocs creates an empty grouping.
func NewGroupedDocs() *GroupedDocs {
	return &GroupedDocs{groups: make(map[string]*GroupDocs)}
}

// Group returns the docs for name, creating them on first use.
func (g *GroupedDocs) Group(name string) *GroupDocs {
	if docs, ok := g.groups[name]; ok {
		return docs
	}
	docs := NewGroupDocs()
	g.groups[name] = docs
	g.order = append(g.order, name)
	return docs
}

// Get returns the docs for name if the group exists.
func (g *GroupedDocs) Get(name string) (*GroupDocs, bool) {
	docs, ok := g.groups[name]
	return docs, ok
}

// Names returns the group names in first-seen order.
func (g *GroupedDocs) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Len returns the number of groups.
func (g *GroupedDocs) Len() int {
	return len(g.order)
}
