// Package pipeline runs a graph through the full load → simulate → render
// sequence. The CLI and the HTTP server both drive it through a [Runner].
//
// # Stages
//
//  1. Load: read the graph and configuration, apply overrides and validate.
//  2. Layout: run the force simulation. After every tick a [render.Builder]
//     applies the layout strategy and derives the frame descriptors; the
//     frame of the last tick is kept.
//  3. Render: write the frame in each requested format.
//
// Layout and render results are cached when the runner has a cache. Runs
// with a custom layout strategy or a label function are never cached,
// since neither is part of the cache key.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    GraphPath: "graph.json",
//	    Formats:   []string{"svg", "json"},
//	    Highlight: "Mary",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/sim"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultTicks = sim.DefaultTicks
	DefaultSeed  = uint64(1)

	// DefaultScale is the PNG pixel scale.
	DefaultScale = 2.0
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"

	// FormatGraphviz is SVG drawn by Graphviz from the DOT output.
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatGraphviz: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It decodes from JSON for API
// requests; runtime-only fields are skipped.
type Options struct {
	// Graph input: a file path or inline JSON.
	GraphPath string          `json:"graph_path,omitempty"`
	Graph     json.RawMessage `json:"graph,omitempty"`

	// Config input: a TOML/JSON file path or inline JSON. Defaults apply
	// when neither is given.
	ConfigPath string          `json:"config_path,omitempty"`
	ConfigJSON json.RawMessage `json:"config,omitempty"`

	// Overrides applied over the loaded config.
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	LayoutName string  `json:"layout,omitempty"`
	Directed   *bool   `json:"directed,omitempty"`
	Automatic  *bool   `json:"automatic_layout,omitempty"`

	// Simulation options
	Ticks     int     `json:"ticks,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	Transform float64 `json:"transform,omitempty"`

	// Render options
	Formats       []string       `json:"formats,omitempty"`
	Highlight     string         `json:"highlight,omitempty"`
	HighlightLink *graph.LinkRef `json:"highlight_link,omitempty"`
	Scale         float64        `json:"scale,omitempty"`
	Title         string         `json:"title,omitempty"`
	Refresh       bool           `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Config *config.Config `json:"-"`
	Layout layout.Mode    `json:"-"`
	Logger *log.Logger    `json:"-"`

	validated bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png, pdf, graphviz)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the input fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GraphPath == "" && len(o.Graph) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph_path or graph is required")
	}
	if o.GraphPath != "" && len(o.Graph) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "graph_path and graph are mutually exclusive")
	}
	if o.ConfigPath != "" && len(o.ConfigJSON) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "config_path and config are mutually exclusive")
	}
	if err := o.ValidateSimulation(); err != nil {
		return err
	}
	if err := o.ValidateRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateRender checks and defaults only the fields [Render] reads.
func (o *Options) ValidateRender() error {
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be > 0, got %g", o.Scale)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return nil
}

// ValidateSimulation checks and defaults only the fields [Simulate] reads.
// It does not require a graph source, so callers holding in-memory data
// can simulate without one.
func (o *Options) ValidateSimulation() error {
	if o.LayoutName != "" {
		if _, ok := layout.ParseKind(o.LayoutName); !ok {
			return errors.New(errors.ErrCodeInvalidLayout,
				"unknown layout %q (must be one of: %s)", o.LayoutName, strings.Join(layout.Kinds(), ", "))
		}
	}
	if o.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be >= 0, got %d", o.Ticks)
	}
	if o.Highlight != "" && o.HighlightLink != nil {
		return errors.New(errors.ErrCodeInvalidInput, "highlight and highlight_link are mutually exclusive")
	}

	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Transform == 0 {
		o.Transform = 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// HighlightState returns the requested highlight before expansion.
func (o *Options) HighlightState() render.Highlight {
	switch {
	case o.Highlight != "":
		return render.FocusNode(graph.ID(o.Highlight))
	case o.HighlightLink != nil:
		return render.FocusLink(o.HighlightLink.Source, o.HighlightLink.Target)
	}
	return render.Highlight{}
}

// Cacheable reports whether runs with these options may be cached.
func (o *Options) Cacheable(cfg *config.Config) bool {
	return !o.Refresh && !o.Layout.IsCustom() && cfg.Node.LabelFunc == nil
}

// LayoutKeyOpts returns cache key options for the simulation.
func (o *Options) LayoutKeyOpts(mode layout.Mode) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:      mode.String(),
		Ticks:     o.Ticks,
		Transform: o.Transform,
		Seed:      o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(mode layout.Mode, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		LayoutKeyOpts: o.LayoutKeyOpts(mode),
		Format:        format,
		Highlight:     o.highlightKey(),
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatSVG || format == FormatPNG || format == FormatPDF {
		opts.Title = o.Title
	}
	return opts
}

func (o *Options) highlightKey() string {
	switch {
	case o.Highlight != "":
		return "node=" + o.Highlight
	case o.HighlightLink != nil:
		return "link=" + string(o.HighlightLink.Source) + "->" + string(o.HighlightLink.Target)
	}
	return ""
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the graph with final node positions.
	Data graph.Data

	// Config is the effective, validated configuration.
	Config config.Config

	// Frame holds the descriptors of the last tick.
	Frame render.Frame

	// Mode is the layout mode that ran.
	Mode layout.Mode

	// GraphHash and ConfigHash identify the inputs in cache keys.
	GraphHash  string
	ConfigHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	Unresolved int
	Ticks      int
	Alpha      float64
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}
