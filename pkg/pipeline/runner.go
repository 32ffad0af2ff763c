package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/squarify/pkg/cache"
	"github.com/matzehuels/squarify/pkg/layout"
	"github.com/matzehuels/squarify/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default cache TTLs when positive.
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

// Execute runs the complete layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{InputHash: InputHash(opts)}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.RectCount = len(l.Rects)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"rects", len(l.Rects),
		"worst_ratio", l.Stats.WorstRatio,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	opts.Logger.Debug("exported layout",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(InputHash(opts), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Warn("discarding unreadable cached layout", "err", err)
		} else if err != nil {
			opts.Logger.Warn("layout cache lookup failed", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(opts.Values))
	start := time.Now()
	l, err := ComputeLayout(opts)
	hooks.OnLayoutComplete(ctx, len(l.Rects), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
			opts.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return l, err
}

// ExportWithCacheInfo encodes l in opts.Formats with caching and returns
// whether every artifact came from the cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Layout()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()
	exported, err := ExportLayout(l, opts.Formats)
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range exported {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return exported, false, nil
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Export(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// ExecuteBatch runs Execute for every element of batch with at most
// concurrency runs in flight. Results are returned in batch order. The first
// failure cancels the remaining runs and is returned.
func (r *Runner) ExecuteBatch(ctx context.Context, batch []Options, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*Result, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(ctx, batch[i])
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
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

// InputHash returns the content hash of the weights and labels in opts.
func InputHash(opts Options) string {
	data, _ := json.Marshal(struct {
		Values []float64 `json:"values"`
		Labels []string  `json:"labels,omitempty"`
	}{opts.Values, opts.Labels})
	return cache.Hash(data)
}
