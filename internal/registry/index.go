// Package registry provides the reference index of a run: one reference per
// raw documented item, keyed by (name, kind), plus the require graph.
package registry

import (
	"fmt"
	"sync"

	"github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/conneroisu/sassdocgen/internal/sassdoc"
	"github.com/conneroisu/sassdocgen/internal/types"
)

// ErrUnresolvedReference matches every error returned for a missing link
// target through errors.Is.
var ErrUnresolvedReference = errors.NewReferenceError(errors.ErrCodeUnresolvedRef, "unresolved reference")

// Index manages the references of all parsed items
type Index struct {
	references []types.Reference
	byKey      map[types.SymbolKey]int
	requires   map[types.SymbolKey][]types.SymbolKey
	mutex      sync.RWMutex
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		byKey:    make(map[types.SymbolKey]int),
		requires: make(map[types.SymbolKey][]types.SymbolKey),
	}
}

// Build creates the index for a parsed item list. Items are registered in
// order and none are deduplicated.
func Build(items []*sassdoc.Item) *Index {
	index := NewIndex()
	for _, item := range items {
		index.Register(types.Reference{
			Name:    item.Context.Name,
			Kind:    item.Context.Kind,
			Group:   item.PrimaryGroup(),
			File:    item.File.Path,
			Private: item.IsPrivate(),
		})
		for _, req := range item.Require {
			index.addRequire(item.Key(), types.SymbolKey{Name: req.Name, Kind: req.Kind})
		}
	}
	return index
}

// Register appends a reference. Lookups resolve to the first reference
// registered for a key.
func (r *Index) Register(ref types.Reference) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.references = append(r.references, ref)
	if _, exists := r.byKey[ref.Key()]; !exists {
		r.byKey[ref.Key()] = len(r.references) - 1
	}
}

func (r *Index) addRequire(from, to types.SymbolKey) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.requires[from] {
		if existing == to {
			return
		}
	}
	r.requires[from] = append(r.requires[from], to)
}

// Get retrieves a reference by key
func (r *Index) Get(key types.SymbolKey) (types.Reference, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i, exists := r.byKey[key]
	if !exists {
		return types.Reference{}, false
	}
	return r.references[i], true
}

// All returns every reference in registration order
func (r *Index) All() []types.Reference {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]types.Reference, len(r.references))
	copy(result, r.references)
	return result
}

// Count returns the number of registered references
func (r *Index) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.references)
}

// LinkTo resolves a cross reference. A missing target is an error wrapping
// ErrUnresolvedReference; a private target resolves to nil.
func (r *Index) LinkTo(name string, kind types.Kind, description string) (*types.LinkTo, error) {
	key := types.SymbolKey{Name: name, Kind: kind}
	ref, exists := r.Get(key)
	if !exists {
		return nil, errors.NewReferenceError(errors.ErrCodeUnresolvedRef,
			fmt.Sprintf("unable to find a link for `%s`", name)).
			WithComponent(key.String())
	}
	if ref.Private {
		return nil, nil
	}
	return &types.LinkTo{
		Name:        name,
		Type:        kind,
		Description: description,
		Group:       ref.Group,
	}, nil
}

// Unique keeps the first non-nil link of each name, in order.
func Unique(links []*types.LinkTo) []types.LinkTo {
	result := make([]types.LinkTo, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		if link == nil || seen[link.Name] {
			continue
		}
		seen[link.Name] = true
		result = append(result, *link)
	}
	return result
}
