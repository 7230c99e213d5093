package render

import (
	"encoding/json"
	"maps"
	"math"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// NodeClassName is the class of every node element.
const NodeClassName = "node"

// NodeCallbacks are node interaction handlers passed through to the
// descriptor unchanged.
type NodeCallbacks struct {
	OnClickNode      func(id graph.ID)
	OnRightClickNode func(id graph.ID)
	OnMouseOverNode  func(id graph.ID)
	OnMouseOut       func(id graph.ID)
}

// NodeProps is the render descriptor for one node.
type NodeProps struct {
	ID          graph.ID `json:"id"`
	ClassName   string   `json:"className"`
	Cursor      string   `json:"cursor"`
	CX          float64  `json:"cx"`
	CY          float64  `json:"cy"`
	DX          float64  `json:"dx"`
	Fill        string   `json:"fill"`
	FontColor   string   `json:"fontColor"`
	FontSize    float64  `json:"fontSize"`
	FontWeight  string   `json:"fontWeight"`
	Label       string   `json:"label"`
	Opacity     float64  `json:"opacity"`
	RenderLabel bool     `json:"renderLabel"`

	// Size is zero when box dimensions apply.
	Size   float64 `json:"size,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Highlighted        bool    `json:"highlighted"`
	Selected           bool    `json:"selected"`
	PreviouslySelected bool    `json:"previouslySelected"`
	Stroke             string  `json:"stroke"`
	StrokeWidth        float64 `json:"strokeWidth"`
	SVG                string  `json:"svg,omitempty"`
	Type               string  `json:"type"`

	// OverrideGlobalViewGenerator is set when the node brings its own SVG.
	OverrideGlobalViewGenerator bool `json:"overrideGlobalViewGenerator"`

	// Extra carries the node's input fields not mapped to the fields above.
	Extra     map[string]any `json:"-"`
	Callbacks NodeCallbacks  `json:"-"`
}

// MarshalJSON writes the input fields of the node overlaid with the
// computed fields. Computed fields win on collision.
func (p NodeProps) MarshalJSON() ([]byte, error) {
	type plain NodeProps
	computed, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return computed, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(computed, &fields); err != nil {
		return nil, err
	}
	out := maps.Clone(p.Extra)
	maps.Copy(out, fields)
	return json.Marshal(out)
}

// NodeOpacity returns the opacity for n. While a node (or a complete link)
// is focused, highlighted nodes use the node opacity and all others the
// highlight opacity.
func NodeOpacity(n *graph.Node, cfg *config.Config, h Highlight) float64 {
	if h.nodeFocused() {
		if h.Covers(n) {
			return cfg.Node.Opacity
		}
		return cfg.HighlightOpacity
	}
	if n.Opacity > 0 {
		return n.Opacity
	}
	return cfg.Node.Opacity
}

// BuildNodeProps derives the descriptor for n at the given zoom transform.
func BuildNodeProps(n *graph.Node, cfg *config.Config, h Highlight, transform float64, cb NodeCallbacks) NodeProps {
	nc := &cfg.Node
	t := 1 / zoom(transform)
	highlight := h.Covers(n)

	fill := or(n.Color, nc.Color)
	stroke := or(n.StrokeColor, nc.StrokeColor)
	if n.Selected {
		stroke = nc.SelectedStrokeColor
	}
	strokeWidth := orNum(n.StrokeWidth, nc.StrokeWidth)
	fontSize := nc.FontSize
	fontWeight := nc.FontWeight
	if highlight {
		fill = nc.HighlightColor.Or(fill)
		stroke = nc.HighlightStrokeColor.Or(stroke)
		strokeWidth = nc.HighlightStrokeWidth.Or(strokeWidth)
		fontSize = nc.HighlightFontSize
		fontWeight = nc.HighlightFontWeight.Or(fontWeight)
	}

	width := orNum(n.Width, nc.Width)
	height := orNum(n.Height, nc.Height)
	var size float64
	if width <= 0 || height <= 0 {
		size = orNum(n.Size, nc.Size)
	}

	return NodeProps{
		ID:                          n.ID,
		ClassName:                   NodeClassName,
		Cursor:                      nc.MouseCursor,
		CX:                          coordOrZero(n.X),
		CY:                          coordOrZero(n.Y),
		DX:                          fontSize*t + size/100 + 1.5,
		Fill:                        fill,
		FontColor:                   or(n.FontColor, nc.FontColor),
		FontSize:                    fontSize * t,
		FontWeight:                  fontWeight,
		Label:                       nodeLabel(n, nc),
		Opacity:                     NodeOpacity(n, cfg, h),
		RenderLabel:                 nc.RenderLabel,
		Size:                        size,
		Width:                       width,
		Height:                      height,
		Highlighted:                 highlight,
		Selected:                    n.Selected,
		PreviouslySelected:          n.PreviouslySelected,
		Stroke:                      stroke,
		StrokeWidth:                 strokeWidth * t,
		SVG:                         or(n.SVG, nc.SVG),
		Type:                        or(n.SymbolType, nc.SymbolType),
		OverrideGlobalViewGenerator: n.SVG != "",
		Extra:                       n.Extra,
		Callbacks:                   cb,
	}
}

func nodeLabel(n *graph.Node, nc *config.NodeConfig) string {
	if nc.LabelFunc != nil {
		return nc.LabelFunc(n)
	}
	if v, ok := n.Prop(nc.LabelProperty); ok {
		return v
	}
	return string(n.ID)
}

// zoom sanitizes a transform; non-positive or non-finite values count as 1.
func zoom(t float64) float64 {
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return 1
	}
	return t
}

func coordOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func orNum(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
