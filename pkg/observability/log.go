package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnParseStart(_ context.Context, size int) {
	h.Logger.Debug("parse start", "bytes", size)
}

func (h LogPipelineHooks) OnParseComplete(_ context.Context, nodeCount int, d time.Duration, err error) {
	h.done("parse", d, err, "nodes", nodeCount)
}

func (h LogPipelineHooks) OnLayoutStart(_ context.Context, direction string, visible int) {
	h.Logger.Debug("layout start", "direction", direction, "visible", visible)
}

func (h LogPipelineHooks) OnLayoutComplete(_ context.Context, direction string, d time.Duration, err error) {
	h.done("layout", d, err, "direction", direction)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h LogPipelineHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d)
	if err != nil {
		h.Logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" complete", kv...)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}
