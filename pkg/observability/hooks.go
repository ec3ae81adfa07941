// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; the application
// decides what to do with them. Defaults are no-ops, so instrumentation costs
// nothing until main registers an implementation.
//
// Register hooks at startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Emit events from library code:
//
//	observability.Pipeline().OnParseStart(ctx, len(data))
//	g, err := ppm.Parse(src)
//	observability.Pipeline().OnParseComplete(ctx, g.Rows(), g.Cols(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the parse, transform and serialize stages.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, size int)
	OnParseComplete(ctx context.Context, rows, cols int, duration time.Duration, err error)

	OnTransformStart(ctx context.Context, transform string)
	OnTransformComplete(ctx context.Context, transform string, duration time.Duration, err error)

	OnSerializeStart(ctx context.Context)
	OnSerializeComplete(ctx context.Context, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, int)                                 {}
func (NoopPipelineHooks) OnParseComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnTransformStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnTransformComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnSerializeStart(context.Context)                                  {}
func (NoopPipelineHooks) OnSerializeComplete(context.Context, int, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Mostly useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
