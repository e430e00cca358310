package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/observability"
	"github.com/sparced/benchviz/pkg/viz"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer means DefaultKeyer; a nil cache disables caching.
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

// Execute runs load → build → render. Build is skipped when every
// requested artifact is already cached.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	in, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	result, err := r.Render(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Build assembles the figure for in.
func (r *Runner) Build(ctx context.Context, in *Input) (*figure.Figure, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(viz.PlotIDs(in.Rows)))
	start := time.Now()

	fig, err := figure.Build(in.Rows, in.Store, in.Style)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	hooks.OnBuildComplete(ctx, len(fig.Axes), fig.ArtistCount(), time.Since(start), nil)
	return fig, nil
}

// Render returns the artifacts for in, from the cache when every format is
// cached and otherwise by building and encoding the figure.
func (r *Runner) Render(ctx context.Context, in *Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateOutputs(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		InputHash: in.Hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Rows = len(in.Rows)
	result.Stats.Conditions, _, _ = in.Store.Counts()

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, in.Hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Info("using cached artifacts", "formats", opts.Formats)
			return result, nil
		}
	}

	buildStart := time.Now()
	fig, err := r.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	result.Figure = fig
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Subplots = len(fig.Axes)
	result.Stats.Artists = fig.ArtistCount()
	opts.Logger.Info("built figure",
		"subplots", len(fig.Axes),
		"grid", fmt.Sprintf("%dx%d", fig.Rows(), fig.Cols()),
		"artists", fig.ArtistCount(),
		"legend", len(fig.Legend),
		"duration", result.Stats.BuildTime)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := RenderFigure(ctx, fig, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(in.Hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return result, nil
}

// cached returns every requested format from the cache, or false if any
// of them is missing.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Debug("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
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
