// Package observability provides hooks for instrumenting searches and the
// result store.
//
// The package uses a simple hooks pattern: hook interfaces per event
// category, no-op defaults, and a global registry that main can override at
// startup. Libraries emit events unconditionally; without registration the
// calls are free of side effects. This keeps the engine and store packages
// independent of any metrics or tracing backend.
//
// Register hooks at application startup:
//
//	observability.SetSearchHooks(&mySearchHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Search().OnSplitStart(ctx, split)
//	// ... search the split ...
//	observability.Search().OnSplitComplete(ctx, split, found, elapsed, timedOut)
package observability

import (
	"context"
	"sync"
	"time"
)

// SearchHooks receives events from the layout search engine.
type SearchHooks interface {
	// OnSearchStart fires once per run with the number of splits planned.
	OnSearchStart(ctx context.Context, splits int)

	// OnSplitStart fires when a split's backtracking search begins.
	// split is the compact label, e.g. "R4/L2/S6".
	OnSplitStart(ctx context.Context, split string)

	// OnSplitComplete fires when a split finishes, times out, or is skipped
	// as infeasible.
	OnSplitComplete(ctx context.Context, split string, found int, elapsed time.Duration, timedOut bool)

	// OnLayoutAccepted fires for every layout that passes closure and
	// geometry checks.
	OnLayoutAccepted(ctx context.Context, split, layout string)

	// OnSearchComplete fires once per run with the merged result size.
	OnSearchComplete(ctx context.Context, found int, elapsed time.Duration)
}

// StoreHooks receives events from result store operations.
type StoreHooks interface {
	// OnHit records a store hit for a result key.
	OnHit(ctx context.Context, key string)

	// OnMiss records a store miss.
	OnMiss(ctx context.Context, key string)

	// OnSet records a store write of the given size in bytes.
	OnSet(ctx context.Context, key string, size int)
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, int)                                {}
func (NoopSearchHooks) OnSplitStart(context.Context, string)                              {}
func (NoopSearchHooks) OnSplitComplete(context.Context, string, int, time.Duration, bool) {}
func (NoopSearchHooks) OnLayoutAccepted(context.Context, string, string)                  {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, time.Duration)              {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnHit(context.Context, string)      {}
func (NoopStoreHooks) OnMiss(context.Context, string)     {}
func (NoopStoreHooks) OnSet(context.Context, string, int) {}

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// Call once at application startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// Call once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	storeHooks = NoopStoreHooks{}
}
