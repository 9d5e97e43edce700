package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/outline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default layout and artifact TTLs when non-zero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	root, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Tree = root
	result.TreeHash = TreeHash(root)
	result.Stats.NodeCount = root.Count()
	result.Stats.VisibleCount = root.VisibleCount()
	result.Stats.MaxDepth = root.MaxDepth()

	r.Logger.Info("parsed outline",
		"nodes", result.Stats.NodeCount,
		"visible", result.Stats.VisibleCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	d, layoutHit, err := r.LayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(d.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse builds the outline tree for opts. Parsing is cheap and never cached.
func (r *Runner) Parse(ctx context.Context, opts Options) (*outline.Node, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(opts.Outline))
	start := time.Now()
	root := Parse(opts)
	hooks.OnParseComplete(ctx, root.Count(), time.Since(start), nil)
	return root, nil
}

// LayoutWithCacheInfo lays out root with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, root *outline.Node, opts Options) (diagram.Diagram, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Diagram{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(TreeHash(root), opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := diagram.UnmarshalDiagram(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				cached.Style = opts.Style
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "key", cacheKey, "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Direction, root.VisibleCount())
	start := time.Now()
	d, err := ComputeLayout(root, opts)
	hooks.OnLayoutComplete(ctx, opts.Direction, time.Since(start), err)
	if err != nil {
		return diagram.Diagram{}, false, err
	}

	if data, err := diagram.MarshalDiagram(d); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err == nil {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		} else {
			opts.Logger.Debug("cache write failed", "key", cacheKey, "err", err)
		}
	}
	return d, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, root *outline.Node, opts Options) (diagram.Diagram, error) {
	d, _, err := r.LayoutWithCacheInfo(ctx, root, opts)
	return d, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	d.Style = opts.Style

	diagramData, err := diagram.MarshalDiagram(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize diagram for cache key: %w", err)
	}
	diagramHash := cache.Hash(diagramData)
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := RenderArtifacts(ctx, d, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d diagram.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// TreeHash returns the content hash of root, expand state included.
func TreeHash(root *outline.Node) string {
	data, _ := json.Marshal(diagram.FromOutline(root))
	return cache.Hash(data)
}
