package layout

import (
	"strings"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Kind identifies a built-in layout strategy.
type Kind int

const (
	Default Kind = iota
	WeakTree
	StrongTree
	WeakFlow
	StrongFlow
)

var kindNames = [...]string{
	Default:    config.LayoutDefault,
	WeakTree:   config.LayoutWeakTree,
	StrongTree: config.LayoutStrongTree,
	WeakFlow:   config.LayoutWeakFlow,
	StrongFlow: config.LayoutStrongFlow,
}

// String returns the configuration name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return config.LayoutDefault
	}
	return kindNames[k]
}

// ParseKind resolves a layout name. Matching is case-insensitive.
// Unrecognized names report false.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(k), true
		}
	}
	return Default, false
}

// Kinds lists all built-in layout names.
func Kinds() []string {
	return append([]string(nil), kindNames[:]...)
}

// Step is the input to one strategy invocation: a single link and the
// live node collection it refers to. Strategies mutate Nodes in place.
type Step struct {
	Nodes     []graph.Node
	Index     graph.Index
	Source    graph.ID
	Target    graph.ID
	Link      *graph.Link
	Config    *config.Config
	Transform float64
	Dragged   bool
	Alpha     float64
}

// endpoints resolves the link's source and target. ok is false when
// either id is missing from the index.
func (s Step) endpoints() (src, tgt *graph.Node, ok bool) {
	src = s.Index.Resolve(s.Nodes, s.Source)
	tgt = s.Index.Resolve(s.Nodes, s.Target)
	return src, tgt, src != nil && tgt != nil
}

func (s Step) clamp(n *graph.Node) {
	n.X = Clamp(n.X, AxisX, s.Config, s.Transform)
	n.Y = Clamp(n.Y, AxisY, s.Config, s.Transform)
}

// Strategy adjusts the endpoints of one link.
type Strategy func(s Step)

// Mode is a parsed layout selection: a built-in kind or a custom
// strategy. The zero value is the DEFAULT kind.
type Mode struct {
	kind   Kind
	custom Strategy
}

// Named selects a built-in strategy.
func Named(k Kind) Mode { return Mode{kind: k} }

// Custom selects a caller-supplied strategy. A nil function selects
// DEFAULT.
func Custom(fn Strategy) Mode { return Mode{custom: fn} }

// ModeFromConfig parses the configured layout name. Unset or unrecognized
// names select DEFAULT.
func ModeFromConfig(spec config.LayoutSpec) Mode {
	k, _ := ParseKind(spec.Name())
	return Named(k)
}

// IsCustom reports whether m wraps a caller-supplied strategy.
func (m Mode) IsCustom() bool { return m.custom != nil }

// String returns the kind name, or "CUSTOM".
func (m Mode) String() string {
	if m.custom != nil {
		return "CUSTOM"
	}
	return m.kind.String()
}

// Strategy returns the function to apply per link.
func (m Mode) Strategy() Strategy {
	if m.custom != nil {
		return m.custom
	}
	switch m.kind {
	case WeakTree:
		return weak(AxisY)
	case StrongTree:
		return strong(AxisY)
	case WeakFlow:
		return weak(AxisX)
	case StrongFlow:
		return strong(AxisX)
	default:
		return clampOnly
	}
}

// =============================================================================
// Built-in strategies
// =============================================================================

func clampOnly(s Step) {
	src, tgt, ok := s.endpoints()
	if !ok {
		return
	}
	s.clamp(src)
	s.clamp(tgt)
}

// weak pushes source and target apart by alpha along a.
func weak(a Axis) Strategy {
	return func(s Step) {
		src, tgt, ok := s.endpoints()
		if !ok {
			return
		}
		*coord(src, a) -= s.Alpha
		*coord(tgt, a) += s.Alpha
		s.clamp(src)
		s.clamp(tgt)
	}
}

// strong pins source and target to their degree bands along a, offset by
// alpha. While a node is being dragged only the clamp runs.
func strong(a Axis) Strategy {
	return func(s Step) {
		src, tgt, ok := s.endpoints()
		if !ok {
			return
		}
		if !s.Dragged {
			*coord(src, a) = PositionForDegree(src.Degree, a, s.Config, s.Transform) - s.Alpha
			*coord(tgt, a) = PositionForDegree(tgt.Degree, a, s.Config, s.Transform) + s.Alpha
		}
		s.clamp(src)
		s.clamp(tgt)
	}
}

func coord(n *graph.Node, a Axis) *float64 {
	if a == AxisY {
		return &n.Y
	}
	return &n.X
}
