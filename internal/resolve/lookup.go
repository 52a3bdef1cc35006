// Package resolve computes the final values of documented variables. The
// formatter registers every declaration in a Lookup, Resolver evaluates the
// unresolved ones and Materialize writes the results into the records.
package resolve

import (
	"sort"
	"sync"

	"github.com/conneroisu/sassdocgen/internal/types"
)

// Lookup is the global variable table keyed by variable name.
type Lookup struct {
	mu      sync.RWMutex
	entries map[string]types.VariableLookup
	order   []string
}

// NewLookup creates an empty table.
func NewLookup() *Lookup {
	return &Lookup{entries: make(map[string]types.VariableLookup)}
}

// Set registers a declaration. A later declaration of the same name replaces
// the earlier one.
func (l *Lookup) Set(entry types.VariableLookup) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[entry.Name]; !exists {
		l.order = append(l.order, entry.Name)
	}
	l.entries[entry.Name] = entry
}

// Merge copies every entry of other in other's registration order.
func (l *Lookup) Merge(other *Lookup) {
	for _, entry := range other.Ordered() {
		l.Set(entry)
	}
}

// Get returns the entry for name.
func (l *Lookup) Get(name string) (types.VariableLookup, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[name]
	return entry, ok
}

// Len returns the number of entries.
func (l *Lookup) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// Ordered returns the entries in first registration order.
func (l *Lookup) Ordered() []types.VariableLookup {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]types.VariableLookup, len(l.order))
	for i, name := range l.order {
		result[i] = l.entries[name]
	}
	return result
}

// Unresolved returns the entries without a resolved value, sorted by name.
func (l *Lookup) Unresolved() []types.VariableLookup {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []types.VariableLookup
	for _, entry := range l.entries {
		if entry.ResolvedValue == "" {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// SetResolved stores the resolved value of name.
func (l *Lookup) SetResolved(name, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.entries[name]; ok {
		entry.ResolvedValue = value
		l.entries[name] = entry
	}
}

// Map returns a copy of the table for serialization.
func (l *Lookup) Map() map[string]types.VariableLookup {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]types.VariableLookup, len(l.entries))
	for name, entry := range l.entries {
		result[name] = entry
	}
	return result
}
