package registry

import (
	"github.com/conneroisu/sassdocgen/internal/types"
)

// Requires returns the symbols the given symbol requires
func (r *Index) Requires(key types.SymbolKey) []types.SymbolKey {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]types.SymbolKey, len(r.requires[key]))
	copy(result, r.requires[key])
	return result
}

// Dependents returns the symbols that require the given symbol, in
// registration order
func (r *Index) Dependents(key types.SymbolKey) []types.SymbolKey {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var dependents []types.SymbolKey
	seen := make(map[types.SymbolKey]bool)
	for _, ref := range r.references {
		from := ref.Key()
		if seen[from] {
			continue
		}
		seen[from] = true
		for _, dep := range r.requires[from] {
			if dep == key {
				dependents = append(dependents, from)
				break
			}
		}
	}
	return dependents
}

// DetectCycles detects require cycles. Each cycle starts and ends with the
// same symbol.
func (r *Index) DetectCycles() [][]types.SymbolKey {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var cycles [][]types.SymbolKey
	visited := make(map[types.SymbolKey]bool)
	recStack := make(map[types.SymbolKey]bool)

	for _, ref := range r.references {
		key := ref.Key()
		if !visited[key] {
			if cycle := r.detectCycleDFS(key, visited, recStack, nil); cycle != nil {
				cycles = append(cycles, cycle)
			}
			clear(recStack)
		}
	}
	return cycles
}

// detectCycleDFS performs DFS to detect cycles
func (r *Index) detectCycleDFS(key types.SymbolKey, visited, recStack map[types.SymbolKey]bool, path []types.SymbolKey) []types.SymbolKey {
	visited[key] = true
	recStack[key] = true
	path = append(path, key)

	for _, dep := range r.requires[key] {
		if !visited[dep] {
			if cycle := r.detectCycleDFS(dep, visited, recStack, path); cycle != nil {
				return cycle
			}
		} else if recStack[dep] {
			for i, p := range path {
				if p == dep {
					cycle := make([]types.SymbolKey, len(path)-i+1)
					copy(cycle, path[i:])
					cycle[len(cycle)-1] = dep
					return cycle
				}
			}
		}
	}

	recStack[key] = false
	return nil
}
