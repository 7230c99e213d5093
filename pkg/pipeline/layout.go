package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
)

// LayoutResult is the outcome of the simulation stage.
type LayoutResult struct {
	Frame      render.Frame
	Ticks      int
	Alpha      float64
	Unresolved int
}

// ResolveMode returns the layout mode for a run: a custom mode from opts,
// otherwise the configured one.
func ResolveMode(cfg *config.Config, opts Options) layout.Mode {
	if opts.Layout.IsCustom() {
		return opts.Layout
	}
	return layout.ModeFromConfig(cfg.LayoutMode)
}

// Simulate runs the force simulation over data in place. After every tick
// the frame descriptors are rebuilt, applying the layout strategy; the
// frame of the last tick is returned. Cancellation is checked between
// ticks.
func Simulate(ctx context.Context, data *graph.Data, cfg *config.Config, opts Options) (LayoutResult, error) {
	if err := opts.ValidateSimulation(); err != nil {
		return LayoutResult{}, err
	}
	logger := opts.Logger

	idx, err := graph.NewIndex(data.Nodes)
	if err != nil {
		return LayoutResult{}, err
	}
	weights := graph.NewWeights(data.Links)
	unresolved := graph.Unresolved(data.Links, idx)
	for _, l := range unresolved {
		logger.Warn("link references unknown node", "source", l.Source, "target", l.Target)
	}

	mode := ResolveMode(cfg, opts)
	builder := render.NewBuilder(cfg, render.WithLayout(mode))
	scene := &render.Scene{
		Data:      data,
		Index:     idx,
		Weights:   weights,
		Highlight: opts.HighlightState().Expand(weights, cfg.HighlightDegree),
		Transform: opts.Transform,
		Alpha:     1,
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, mode.String(), len(data.Nodes))
	start := time.Now()

	s := sim.New(data, idx, cfg,
		sim.WithRadius(layout.NewCollisionRadius(cfg.Node)),
		sim.WithLogger(logger),
		sim.WithSeed(opts.Seed),
	)
	var frame render.Frame
	s.OnTick(func(t sim.Tick) {
		scene.Tick, scene.Alpha, scene.Dragged = t.N, t.Alpha, t.Dragged
		frame = builder.BuildFrame(scene)
		hooks.OnTick(ctx, t.N, t.Alpha)
		if t.N%50 == 0 {
			logger.Debug("tick", "n", t.N, "alpha", t.Alpha)
		}
	})

	ticks, err := s.Run(ctx, opts.Ticks)
	hooks.OnLayoutComplete(ctx, mode.String(), ticks, time.Since(start), err)
	if err != nil {
		return LayoutResult{}, err
	}
	if ticks == 0 {
		frame = builder.BuildFrame(scene)
	}

	return LayoutResult{
		Frame:      frame,
		Ticks:      ticks,
		Alpha:      s.Alpha(),
		Unresolved: len(unresolved),
	}, nil
}

// Replay rebuilds the frame for positions restored from the layout cache.
// No strategy runs, so the stored positions are used as they are.
func Replay(data *graph.Data, cfg *config.Config, entry LayoutEntry, opts Options) (LayoutResult, error) {
	if err := opts.ValidateSimulation(); err != nil {
		return LayoutResult{}, err
	}
	idx, err := graph.NewIndex(data.Nodes)
	if err != nil {
		return LayoutResult{}, err
	}
	for _, p := range entry.Positions {
		if n := idx.Resolve(data.Nodes, p.ID); n != nil {
			n.X, n.Y = p.X, p.Y
		}
	}

	replay := *cfg
	replay.AutomaticLayoutOn = false
	weights := graph.NewWeights(data.Links)
	builder := render.NewBuilder(&replay)
	frame := builder.BuildFrame(&render.Scene{
		Data:      data,
		Index:     idx,
		Weights:   weights,
		Highlight: opts.HighlightState().Expand(weights, cfg.HighlightDegree),
		Transform: opts.Transform,
		Alpha:     entry.Alpha,
		Tick:      entry.Ticks,
	})
	return LayoutResult{
		Frame:      frame,
		Ticks:      entry.Ticks,
		Alpha:      entry.Alpha,
		Unresolved: len(graph.Unresolved(data.Links, idx)),
	}, nil
}

// =============================================================================
// Layout Cache Entries
// =============================================================================

// LayoutEntry is the cached outcome of a simulation: final node positions
// plus the tick count and alpha they were reached at.
type LayoutEntry struct {
	Ticks     int        `json:"ticks"`
	Alpha     float64    `json:"alpha"`
	Positions []Position `json:"positions"`
}

// Position is one node's final coordinates.
type Position struct {
	ID graph.ID `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
}

// NewLayoutEntry captures the positions of data's placed nodes.
func NewLayoutEntry(data *graph.Data, res LayoutResult) LayoutEntry {
	e := LayoutEntry{Ticks: res.Ticks, Alpha: res.Alpha}
	for _, n := range data.Nodes {
		if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
			continue
		}
		e.Positions = append(e.Positions, Position{ID: n.ID, X: n.X, Y: n.Y})
	}
	return e
}

// MarshalLayoutEntry encodes an entry for the cache.
func MarshalLayoutEntry(e LayoutEntry) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayoutEntry decodes a cached entry.
func UnmarshalLayoutEntry(data []byte) (LayoutEntry, error) {
	var e LayoutEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return LayoutEntry{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return e, nil
}

func logLayout(logger *log.Logger, mode layout.Mode, res LayoutResult, d time.Duration) {
	logger.Info("computed layout",
		"mode", mode,
		"ticks", res.Ticks,
		"alpha", fmt.Sprintf("%.4f", res.Alpha),
		"duration", d)
}
