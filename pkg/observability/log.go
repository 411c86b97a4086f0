package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// The CLI installs it under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnFrontStart(_ context.Context, dim string, samples int) {
	h.Logger.Debug("front sweep started", "dim", dim, "samples", samples)
}

func (h *LogHooks) OnFrontComplete(_ context.Context, dim string, d time.Duration, err error) {
	h.Logger.Debug("front sweep finished", "dim", dim, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnRandomStart(_ context.Context, samples int) {
	h.Logger.Debug("random baseline started", "samples", samples)
}

func (h *LogHooks) OnRandomComplete(_ context.Context, samples int, d time.Duration, err error) {
	h.Logger.Debug("random baseline finished", "samples", samples, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnAnalysisComplete(_ context.Context, runID string, d time.Duration, err error) {
	h.Logger.Debug("analysis finished", "run", runID, "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}
