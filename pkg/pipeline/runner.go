package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state,
// so one Runner may serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses log.Default.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Load
	loadStart := time.Now()
	data, cfg, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Config: cfg, Mode: ResolveMode(&cfg, opts)}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(data.Nodes)
	result.Stats.LinkCount = len(data.Links)
	if err := r.hashInputs(result, data, cfg); err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded graph",
		"nodes", len(data.Nodes),
		"links", len(data.Links),
		"layout", result.Mode)

	// Stage 2: Layout
	layoutStart := time.Now()
	lr, hit, err := r.LayoutWithCacheInfo(ctx, &data, &cfg, result, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Data = data
	result.Frame = lr.Frame
	result.Stats.Ticks = lr.Ticks
	result.Stats.Alpha = lr.Alpha
	result.Stats.Unresolved = lr.Unresolved
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit
	logLayout(opts.Logger, result.Mode, lr, result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo runs the simulation, or replays cached positions,
// and reports whether the cache was hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, data *graph.Data, cfg *config.Config, result *Result, opts Options) (LayoutResult, bool, error) {
	cacheable := opts.Cacheable(cfg)
	key := r.Keyer.LayoutKey(result.GraphHash, result.ConfigHash, opts.LayoutKeyOpts(result.Mode))

	if cacheable {
		if raw, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if entry, err := UnmarshalLayoutEntry(raw); err == nil {
				lr, err := Replay(data, cfg, entry, opts)
				if err == nil {
					return lr, true, nil
				}
			}
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "error", err)
		}
	}

	lr, err := Simulate(ctx, data, cfg, opts)
	if err != nil {
		return LayoutResult{}, false, err
	}

	if cacheable {
		if raw, err := MarshalLayoutEntry(NewLayoutEntry(data, lr)); err == nil {
			if err := r.Cache.Set(ctx, key, raw, cache.TTLLayout); err != nil {
				opts.Logger.Warn("layout cache write failed", "error", err)
			}
		}
	}
	return lr, false, nil
}

// RenderWithCacheInfo renders every requested format. Artifacts come from
// the cache only when all formats hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	cacheable := opts.Cacheable(&result.Config)
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(result.GraphHash, result.ConfigHash, opts.ArtifactKeyOpts(result.Mode, format))
	}

	if cacheable {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	artifacts, err := Render(ctx, result.Frame, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		for format, data := range artifacts {
			if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
				opts.Logger.Warn("artifact cache write failed", "format", format, "error", err)
			}
		}
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hashInputs fills the graph and config hashes used in cache keys. The
// graph is hashed before simulation mutates positions.
func (r *Runner) hashInputs(result *Result, data graph.Data, cfg config.Config) error {
	raw, err := graph.Marshal(data)
	if err != nil {
		return err
	}
	result.GraphHash = cache.Hash(raw)
	result.ConfigHash, err = cache.HashJSON(cfg)
	return err
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
