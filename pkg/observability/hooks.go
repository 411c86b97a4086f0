// Package observability lets rootfront report analysis, cache and HTTP events
// without depending on a metrics backend.
//
// Each event category is an interface with a no-op default. Programs install
// their own implementation once at startup; [NewLogHooks] writes every event
// to a charmbracelet logger at debug level.
//
//	observability.SetAnalysisHooks(observability.NewLogHooks(logger))
//
// Library code fetches the current hooks at the call site:
//
//	observability.Analysis().OnFrontStart(ctx, "2d", samples)
package observability

import (
	"context"
	"sync"
	"time"
)

// AnalysisHooks receives events from the analysis pipeline.
type AnalysisHooks interface {
	// Front sweep events. dim is "2d" or "3d".
	OnFrontStart(ctx context.Context, dim string, samples int)
	OnFrontComplete(ctx context.Context, dim string, duration time.Duration, err error)

	// Random baseline events
	OnRandomStart(ctx context.Context, samples int)
	OnRandomComplete(ctx context.Context, samples int, duration time.Duration, err error)

	// OnAnalysisComplete fires once per run with its total duration.
	OnAnalysisComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response status and handling time.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnFrontStart(context.Context, string, int)                        {}
func (NoopAnalysisHooks) OnFrontComplete(context.Context, string, time.Duration, error)    {}
func (NoopAnalysisHooks) OnRandomStart(context.Context, int)                               {}
func (NoopAnalysisHooks) OnRandomComplete(context.Context, int, time.Duration, error)      {}
func (NoopAnalysisHooks) OnAnalysisComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set. The zero value is not usable; build
// slots with a no-op default.
type slot[H any] struct {
	mu   sync.RWMutex
	cur  H
	noop H
}

func newSlot[H any](noop H) *slot[H] { return &slot[H]{cur: noop, noop: noop} }

func (s *slot[H]) get() H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set installs h; a nil interface value leaves the current hooks in place.
func (s *slot[H]) set(h H) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[H]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	analysisSlot = newSlot[AnalysisHooks](NoopAnalysisHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetAnalysisHooks installs h for all later analysis runs. Call it at startup.
func SetAnalysisHooks(h AnalysisHooks) { analysisSlot.set(h) }

// SetCacheHooks installs h for front cache lookups and writes.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks installs h for the API server.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

// Analysis returns the installed analysis hooks.
func Analysis() AnalysisHooks { return analysisSlot.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks. Tests use it to undo Set calls.
func Reset() {
	analysisSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
