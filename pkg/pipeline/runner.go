package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cafeplan/pkg/cache"
	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs resolve → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	req, hash, err := Resolve(opts)
	if err != nil {
		return nil, stageError("resolve", err)
	}
	result := &Result{Request: req, ParamsHash: hash}

	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, stageError("layout", err)
	}
	result.Layout = layout
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats = Stats{
		Slots:         len(layout.Slots),
		Chairs:        len(layout.Chairs),
		DroppedChairs: layout.DroppedChairs(),
		Rows:          len(floor.Rows(layout.Slots)),
		LayoutTime:    time.Since(layoutStart),
	}
	opts.Logger.Info("computed layout",
		"slots", result.Stats.Slots,
		"rows", result.Stats.Rows,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, stageError("render", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes the layout, serving it from the cache
// when possible, and reports whether it was a cache hit.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (floor.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return floor.Result{}, false, err
	}

	req, hash, err := Resolve(opts)
	if err != nil {
		return floor.Result{}, false, err
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := unmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", key)
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, hash)
	layout, err := GenerateLayout(req, opts)
	observability.Pipeline().OnLayoutComplete(ctx, hash, len(layout.Slots), time.Since(start), err)
	if err != nil {
		return floor.Result{}, false, err
	}

	if data, err := marshalLayout(layout); err == nil {
		r.store(ctx, opts, key, cache.KeyTypeLayout, data, cache.TTLLayout)
	}
	return layout, false, nil
}

// ComputeLayout is [Runner.ComputeLayoutWithCacheInfo] without the hit flag.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (floor.Result, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return layout, err
}

// RenderWithCacheInfo renders layout in every requested format. The hit
// flag is true only when every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout floor.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := marshalLayout(layout)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, f := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, f)
			continue
		}
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			artifacts[f] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, missing)
	sub := opts
	sub.Formats = missing
	rendered, err := RenderFromLayout(ctx, layout, sub)
	observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range rendered {
		artifacts[f] = data
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(f))
		r.store(ctx, opts, key, cache.KeyTypeArtifact, data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Render is [Runner.RenderWithCacheInfo] without the hit flag.
func (r *Runner) Render(ctx context.Context, layout floor.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, opts Options, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
