// Package observability provides hooks for instrumenting layout and cache
// operations without adding hard dependencies on observability backends.
//
// The package uses a simple hooks pattern: hook interfaces per event
// category, no-op defaults, and registration at startup. Libraries call
// the accessor and emit events; main decides whether anything listens.
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    // ... run application
//	}
//
//	observability.Layout().OnPlacePreview(ctx, sourceID, split, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// LayoutHooks receives events from workspace layout operations.
type LayoutHooks interface {
	// OnPlacePreview records a preview placement. split reports whether
	// the placement split the workspace (single-pane case) as opposed to
	// routing into an existing pane.
	OnPlacePreview(ctx context.Context, sourceID string, split bool, duration time.Duration, err error)

	// OnRender records a terminal render of the workspace.
	OnRender(ctx context.Context, paneCount, rowCount int, duration time.Duration)
}

// CacheHooks receives events from snapshot cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnPlacePreview(context.Context, string, bool, time.Duration, error) {}
func (NoopLayoutHooks) OnRender(context.Context, int, int, time.Duration)                  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	mu          sync.RWMutex
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
)

// SetLayoutHooks registers layout hooks. Call once at startup, before the
// application starts emitting events.
func SetLayoutHooks(h LayoutHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopLayoutHooks{}
	}
	layoutHooks = h
}

// SetCacheHooks registers cache hooks.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		h = NoopCacheHooks{}
	}
	cacheHooks = h
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	mu.RLock()
	defer mu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
