package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnelgraph/pkg/cache"
	apperrors "github.com/matzehuels/funnelgraph/pkg/errors"
	"github.com/matzehuels/funnelgraph/pkg/funnel"
	"github.com/matzehuels/funnelgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete parse → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx)
	ds, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	observability.Pipeline().OnParseComplete(ctx, ds.SegmentCount(), time.Since(parseStart), err)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Dataset = ds
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Segments = ds.SegmentCount()
	result.Stats.Subsegments = ds.SubsegmentCount()
	result.CacheInfo.ParseHit = parseHit

	// Dataset hash keys the render stage and is reported to API clients.
	if data, err := json.Marshal(ds); err == nil {
		result.DatasetHash = cache.Hash(data)
	}

	r.Logger.Info("parsed dataset",
		"segments", ds.SegmentCount(),
		"subsegments", ds.SubsegmentCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, ds.SegmentCount())
	g, err := r.Build(ds, opts)
	observability.Pipeline().OnBuildComplete(ctx, time.Since(buildStart), err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built geometry",
		"outlines", len(g.Outlines()),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.DatasetHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo normalizes the chart definition's data into a
// validated dataset with caching, and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (funnel.Dataset, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return funnel.Dataset{}, false, err
	}
	r.applyLogger(&opts)

	// Key the normalized dataset by the source definition's data section.
	source, err := json.Marshal(opts.Definition.Data)
	if err != nil {
		return funnel.Dataset{}, false, fmt.Errorf("serialize data for cache key: %w", err)
	}
	cacheKey := r.Keyer.DatasetKey(cache.Hash(source))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var ds funnel.Dataset
			if err := json.Unmarshal(data, &ds); err == nil && ds.Validate() == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return ds, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	// Normalize
	ds, err := opts.Definition.Dataset()
	if err != nil {
		return funnel.Dataset{}, false, err
	}

	// Cache the result
	if data, err := json.Marshal(ds); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
	}

	return ds, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (funnel.Dataset, error) {
	ds, _, err := r.ParseWithCacheInfo(ctx, opts)
	return ds, err
}

// Build constructs the funnel geometry from a dataset. Geometry
// construction is cheap, so this stage is never cached.
func (r *Runner) Build(ds funnel.Dataset, opts Options) (*funnel.Graph, error) {
	orient, err := opts.EffectiveOrientation()
	if err != nil {
		return nil, err
	}
	width, height := opts.EffectiveDimensions()

	return funnel.NewGraph(ds,
		funnel.WithDimensions(width, height),
		funnel.WithOrientation(orient))
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *funnel.Graph, datasetHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := RenderArtifacts(g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *funnel.Graph, datasetHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, datasetHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
