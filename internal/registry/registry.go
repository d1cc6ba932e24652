// Package registry implements the variable registry: an append-only
// bijection between variable names and dense integer indices, stable
// for the registry's lifetime. Grounded on pyquboc's compiler.hpp
// "variables" class (index(name)/name(i)); sentra has no direct
// analogue — its closest shape is bytecode.Chunk.AddConstant's
// append-if-absent slice, which this mirrors.
package registry

import "github.com/google/uuid"

// VariableRegistry owns the canonical name table shared by the
// polynomial and the compiled Model. Callers must not share one
// registry across concurrent compilations (spec §5).
type VariableRegistry struct {
	names []string
	index map[string]int
	id    uuid.UUID
}

// New creates an empty registry tagged with a fresh session id (see
// ID).
func New() *VariableRegistry {
	return &VariableRegistry{
		index: make(map[string]int),
		id:    uuid.New(),
	}
}

// Index returns the existing index for name, assigning the next free
// index on first sight.
func (r *VariableRegistry) Index(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	i := len(r.names)
	r.names = append(r.names, name)
	r.index[name] = i
	return i
}

// Lookup returns the index for name without assigning one, reporting
// whether name has been seen.
func (r *VariableRegistry) Lookup(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Name reverse-looks-up the name for index i.
func (r *VariableRegistry) Name(i int) string { return r.names[i] }

// Len returns the number of distinct variables registered so far.
func (r *VariableRegistry) Len() int { return len(r.names) }

// Names returns the registry's names in index order.
func (r *VariableRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// ID is the registry's session identifier, used by cmd/qubocompile to
// namespace report files; it plays no role in the compiled model's
// semantics.
func (r *VariableRegistry) ID() uuid.UUID { return r.id }
