package render

import (
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
)

// Scene is the per-tick input to a Builder. Data.Nodes is shared with the
// simulation; Index must be consistent with it.
type Scene struct {
	Data      *graph.Data
	Index     graph.Index
	Weights   graph.Weights
	Highlight Highlight
	Transform float64
	Dragged   bool
	Alpha     float64
	Tick      int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLayout overrides the strategy derived from the configured layout
// mode.
func WithLayout(m layout.Mode) BuilderOption {
	return func(b *Builder) { b.mode = m }
}

// WithMarkers sets the marker resolver. Builders sharing a resolver share
// its memo.
func WithMarkers(m *MarkerResolver) BuilderOption {
	return func(b *Builder) { b.markers = m }
}

// WithNodeCallbacks attaches node interaction handlers to every node
// descriptor.
func WithNodeCallbacks(cb NodeCallbacks) BuilderOption {
	return func(b *Builder) { b.nodeCallbacks = cb }
}

// WithLinkCallbacks attaches link interaction handlers to every link
// descriptor.
func WithLinkCallbacks(cb LinkCallbacks) BuilderOption {
	return func(b *Builder) { b.linkCallbacks = cb }
}

// Builder derives render descriptors for one configuration. The layout
// strategy is resolved once, at construction. A Builder must not be used
// for two scenes at the same time when automatic layout is on, because
// link building moves nodes.
type Builder struct {
	cfg           *config.Config
	mode          layout.Mode
	strategy      layout.Strategy
	markers       *MarkerResolver
	nodeCallbacks NodeCallbacks
	linkCallbacks LinkCallbacks
}

// NewBuilder returns a builder for cfg, which must have passed Validate.
func NewBuilder(cfg *config.Config, opts ...BuilderOption) *Builder {
	b := &Builder{
		cfg:  cfg,
		mode: layout.ModeFromConfig(cfg.LayoutMode),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.markers == nil {
		b.markers = NewMarkerResolver()
	}
	b.strategy = b.mode.Strategy()
	return b
}

// Config returns the builder's configuration.
func (b *Builder) Config() *config.Config { return b.cfg }

// Mode returns the resolved layout mode.
func (b *Builder) Mode() layout.Mode { return b.mode }

// Markers returns the marker resolver.
func (b *Builder) Markers() *MarkerResolver { return b.markers }

// BuildNodeProps derives the descriptor for n in sc.
func (b *Builder) BuildNodeProps(sc *Scene, n *graph.Node) NodeProps {
	return BuildNodeProps(n, b.cfg, sc.Highlight, sc.Transform, b.nodeCallbacks)
}

// BuildFrame builds all link descriptors, then all node descriptors, so
// node descriptors see the positions left by the layout strategy.
func (b *Builder) BuildFrame(sc *Scene) Frame {
	f := Frame{
		Width:     b.cfg.Width,
		Height:    b.cfg.Height,
		Transform: zoom(sc.Transform),
		Directed:  b.cfg.Directed,
		Tick:      sc.Tick,
		Alpha:     sc.Alpha,
		Links:     make([]LinkProps, 0, len(sc.Data.Links)),
		Nodes:     make([]NodeProps, 0, len(sc.Data.Nodes)),
	}
	seen := make(map[string]bool)
	for i := range sc.Data.Links {
		lp := b.BuildLinkProps(sc, &sc.Data.Links[i])
		f.Links = append(f.Links, lp)
		if lp.MarkerID != "" && !seen[lp.MarkerID] {
			seen[lp.MarkerID] = true
			size, color, _ := ParseMarkerID(lp.MarkerID)
			f.Markers = append(f.Markers, Marker{ID: lp.MarkerID, Size: size, Color: color})
		}
	}
	for i := range sc.Data.Nodes {
		f.Nodes = append(f.Nodes, b.BuildNodeProps(sc, &sc.Data.Nodes[i]))
	}
	return f
}
