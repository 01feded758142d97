// Package registry accumulates accepted track layouts across splits.
//
// The registry is a set keyed by exact symbol-sequence equality: two layouts
// that are rotations or mirror images of each other are distinct entries.
// Collapsing rotation-equivalent layouts is available as a separate view via
// [Registry.UniqueCyclic]; it is deliberately not part of acceptance.
package registry

import (
	"slices"
	"sync"

	"github.com/slotforge/slotforge/pkg/track"
)

// Registry is a concurrent-safe set of accepted layouts. Layouts only ever
// enter fully accepted; the registry grows monotonically for the lifetime of
// a search run.
type Registry struct {
	mu  sync.RWMutex
	set map[track.Sequence]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{set: make(map[track.Sequence]struct{})}
}

// Add inserts seq and reports whether it was not already present.
func (r *Registry) Add(seq track.Sequence) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.set[seq]; ok {
		return false
	}
	r.set[seq] = struct{}{}
	return true
}

// AddAll inserts every sequence and returns the number of new entries.
func (r *Registry) AddAll(seqs []track.Sequence) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for _, s := range seqs {
		if _, ok := r.set[s]; !ok {
			r.set[s] = struct{}{}
			added++
		}
	}
	return added
}

// Contains reports whether seq is in the registry.
func (r *Registry) Contains(seq track.Sequence) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.set[seq]
	return ok
}

// Len returns the number of distinct layouts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.set)
}

// Layouts returns a sorted snapshot of the full set.
func (r *Registry) Layouts() []track.Sequence {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]track.Sequence, 0, len(r.set))
	for s := range r.set {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// UniqueCyclic returns the rotation-deduplicated view of the set: one
// canonical representative per cyclic equivalence class, sorted.
func (r *Registry) UniqueCyclic() []track.Sequence {
	return track.UniqueCyclic(r.Layouts())
}
