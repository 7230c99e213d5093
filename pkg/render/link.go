package render

import (
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
)

// LinkClassName is the base class of every link element.
const LinkClassName = "link"

// LinkCallbacks are link interaction handlers passed through to the
// descriptor unchanged.
type LinkCallbacks struct {
	OnClickLink      func(source, target graph.ID)
	OnRightClickLink func(source, target graph.ID)
	OnMouseOverLink  func(source, target graph.ID)
	OnMouseOutLink   func(source, target graph.ID)
}

// LinkProps is the render descriptor for one link.
type LinkProps struct {
	Source graph.ID `json:"source"`
	Target graph.ID `json:"target"`

	// MarkerID is empty for undirected graphs.
	MarkerID    string  `json:"markerId,omitempty"`
	D           string  `json:"d"`
	StrokeWidth float64 `json:"strokeWidth"`
	Stroke      string  `json:"stroke"`

	// Label fields are empty unless link labels are rendered.
	Label      string  `json:"label,omitempty"`
	FontColor  string  `json:"fontColor,omitempty"`
	FontSize   float64 `json:"fontSize"`
	FontWeight string  `json:"fontWeight,omitempty"`

	MouseCursor        string  `json:"mouseCursor"`
	ClassName          string  `json:"className"`
	Opacity            float64 `json:"opacity"`
	Highlighted        bool    `json:"highlighted"`
	Selected           bool    `json:"selected"`
	PreviouslySelected bool    `json:"previouslySelected"`

	Callbacks LinkCallbacks `json:"-"`
}

// BuildLinkProps derives the descriptor for l. With automatic layout on,
// the layout strategy runs for l first and may move its endpoints.
// Unresolved endpoints are drawn at the origin.
func (b *Builder) BuildLinkProps(sc *Scene, l *graph.Link) LinkProps {
	cfg := b.cfg
	lc := &cfg.Link
	source, target := l.Source, l.Target

	if cfg.AutomaticLayoutOn {
		b.strategy(layout.Step{
			Nodes:     sc.Data.Nodes,
			Index:     sc.Index,
			Source:    source,
			Target:    target,
			Link:      l,
			Config:    cfg,
			Transform: sc.Transform,
			Dragged:   sc.Dragged,
			Alpha:     sc.Alpha,
		})
	}

	src := sc.Index.Resolve(sc.Data.Nodes, source)
	tgt := sc.Index.Resolve(sc.Data.Nodes, target)
	x1, y1 := position(src)
	x2, y2 := position(tgt)

	h := sc.Highlight
	var mainNodeParticipates bool
	switch cfg.HighlightDegree {
	case 0, 2:
		mainNodeParticipates = true
	default:
		mainNodeParticipates = h.NodeID != "" && (source == h.NodeID || target == h.NodeID)
	}
	highlight := (mainNodeParticipates && h.flagged(src) && h.flagged(tgt)) || h.isLink(source, target)

	opacity := orNum(l.Opacity, lc.Opacity)
	if h.Active() {
		if highlight {
			opacity = lc.Opacity
		} else {
			opacity = cfg.HighlightOpacity
		}
	}

	stroke := or(l.Color, lc.Color)
	if l.Selected {
		stroke = lc.SelectedStrokeColor
	}
	if highlight {
		stroke = lc.HighlightColor.Or(lc.Color)
	}

	t := 1 / zoom(sc.Transform)
	strokeWidth := orNum(l.StrokeWidth, lc.StrokeWidth) * t
	if lc.SemanticStrokeWidth {
		strokeWidth += sc.Weights.Between(source, target) * strokeWidth / 10
	}

	var markerID string
	if cfg.Directed {
		markerID = b.markers.Resolve(zoom(sc.Transform), stroke, cfg.MaxZoom)
	}

	props := LinkProps{
		Source:             source,
		Target:             target,
		MarkerID:           markerID,
		D:                  PathDefinition(lc.Type, x1, y1, x2, y2),
		StrokeWidth:        strokeWidth,
		Stroke:             stroke,
		MouseCursor:        lc.MouseCursor,
		ClassName:          linkClassName(l.ClassName, lc.ClassName),
		Opacity:            opacity,
		Highlighted:        highlight,
		Selected:           l.Selected,
		PreviouslySelected: l.PreviouslySelected,
		Callbacks:          b.linkCallbacks,
	}
	if lc.RenderLabel {
		props.Label, _ = l.Prop(lc.LabelProperty)
		props.FontSize = orNum(l.FontSize, lc.FontSize) * t
		props.FontColor = or(l.FontColor, lc.FontColor)
		props.FontWeight = lc.FontWeight
		if highlight {
			props.FontWeight = lc.HighlightFontWeight.Or(lc.FontWeight)
		}
	}
	return props
}

func linkClassName(own, def string) string {
	if c := or(own, def); c != "" {
		return LinkClassName + " " + c
	}
	return LinkClassName
}

// position returns the node's coordinates, or the origin when the node is
// missing or unplaced.
func position(n *graph.Node) (x, y float64) {
	if n == nil {
		return 0, 0
	}
	return coordOrZero(n.X), coordOrZero(n.Y)
}
