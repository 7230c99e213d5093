package graph

import (
	"encoding/json"
	"maps"
	"math"
)

type nodeJSON struct {
	ID                 ID       `json:"id"`
	X                  *float64 `json:"x,omitempty"`
	Y                  *float64 `json:"y,omitempty"`
	Degree             *int     `json:"degree,omitempty"`
	Size               float64  `json:"size,omitempty"`
	Width              float64  `json:"width,omitempty"`
	Height             float64  `json:"height,omitempty"`
	Opacity            float64  `json:"opacity,omitempty"`
	StrokeWidth        float64  `json:"strokeWidth,omitempty"`
	Color              string   `json:"color,omitempty"`
	StrokeColor        string   `json:"strokeColor,omitempty"`
	FontColor          string   `json:"fontColor,omitempty"`
	SVG                string   `json:"svg,omitempty"`
	SymbolType         string   `json:"symbolType,omitempty"`
	Highlighted        bool     `json:"highlighted,omitempty"`
	Selected           bool     `json:"selected,omitempty"`
	PreviouslySelected bool     `json:"previouslySelected,omitempty"`
}

var nodeKeys = []string{
	"id", "x", "y", "degree", "size", "width", "height", "opacity", "strokeWidth",
	"color", "strokeColor", "fontColor", "svg", "symbolType",
	"highlighted", "selected", "previouslySelected",
}

// UnmarshalJSON decodes a node record, keeping unknown fields in Extra.
// Missing coordinates decode as NaN and a missing degree as UnknownDegree.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra, err := extraFields(data, nodeKeys)
	if err != nil {
		return err
	}

	*n = Node{
		ID:                 raw.ID,
		X:                  math.NaN(),
		Y:                  math.NaN(),
		Degree:             UnknownDegree,
		Size:               raw.Size,
		Width:              raw.Width,
		Height:             raw.Height,
		Opacity:            raw.Opacity,
		StrokeWidth:        raw.StrokeWidth,
		Color:              raw.Color,
		StrokeColor:        raw.StrokeColor,
		FontColor:          raw.FontColor,
		SVG:                raw.SVG,
		SymbolType:         raw.SymbolType,
		Highlighted:        raw.Highlighted,
		Selected:           raw.Selected,
		PreviouslySelected: raw.PreviouslySelected,
		Extra:              extra,
	}
	if raw.X != nil {
		n.X = *raw.X
	}
	if raw.Y != nil {
		n.Y = *raw.Y
	}
	if raw.Degree != nil {
		n.Degree = *raw.Degree
	}
	return nil
}

// MarshalJSON encodes the node with its Extra fields inlined.
// Non-finite coordinates are omitted.
func (n Node) MarshalJSON() ([]byte, error) {
	raw := nodeJSON{
		ID:                 n.ID,
		Size:               n.Size,
		Width:              n.Width,
		Height:             n.Height,
		Opacity:            n.Opacity,
		StrokeWidth:        n.StrokeWidth,
		Color:              n.Color,
		StrokeColor:        n.StrokeColor,
		FontColor:          n.FontColor,
		SVG:                n.SVG,
		SymbolType:         n.SymbolType,
		Highlighted:        n.Highlighted,
		Selected:           n.Selected,
		PreviouslySelected: n.PreviouslySelected,
	}
	if isFinite(n.X) {
		raw.X = &n.X
	}
	if isFinite(n.Y) {
		raw.Y = &n.Y
	}
	if n.Degree >= 0 {
		raw.Degree = &n.Degree
	}
	return mergeExtra(raw, n.Extra)
}

type linkJSON struct {
	Source             ID      `json:"source"`
	Target             ID      `json:"target"`
	Value              float64 `json:"value,omitempty"`
	StrokeWidth        float64 `json:"strokeWidth,omitempty"`
	Opacity            float64 `json:"opacity,omitempty"`
	FontSize           float64 `json:"fontSize,omitempty"`
	Color              string  `json:"color,omitempty"`
	FontColor          string  `json:"fontColor,omitempty"`
	ClassName          string  `json:"className,omitempty"`
	Selected           bool    `json:"selected,omitempty"`
	PreviouslySelected bool    `json:"previouslySelected,omitempty"`
}

var linkKeys = []string{
	"source", "target", "value", "strokeWidth", "opacity", "fontSize",
	"color", "fontColor", "className", "selected", "previouslySelected",
}

// UnmarshalJSON decodes a link record, keeping unknown fields in Extra.
func (l *Link) UnmarshalJSON(data []byte) error {
	var raw linkJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra, err := extraFields(data, linkKeys)
	if err != nil {
		return err
	}
	*l = Link{
		Source:             raw.Source,
		Target:             raw.Target,
		Value:              raw.Value,
		StrokeWidth:        raw.StrokeWidth,
		Opacity:            raw.Opacity,
		FontSize:           raw.FontSize,
		Color:              raw.Color,
		FontColor:          raw.FontColor,
		ClassName:          raw.ClassName,
		Selected:           raw.Selected,
		PreviouslySelected: raw.PreviouslySelected,
		Extra:              extra,
	}
	return nil
}

// MarshalJSON encodes the link with its Extra fields inlined.
func (l Link) MarshalJSON() ([]byte, error) {
	return mergeExtra(linkJSON{
		Source:             l.Source,
		Target:             l.Target,
		Value:              l.Value,
		StrokeWidth:        l.StrokeWidth,
		Opacity:            l.Opacity,
		FontSize:           l.FontSize,
		Color:              l.Color,
		FontColor:          l.FontColor,
		ClassName:          l.ClassName,
		Selected:           l.Selected,
		PreviouslySelected: l.PreviouslySelected,
	}, l.Extra)
}

// extraFields returns the fields of a JSON object that are not in known.
// Returns nil when nothing remains.
func extraFields(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra encodes v and inlines extra. Known fields win on collision.
func mergeExtra(v any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return base, err
	}
	var out map[string]any
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	merged := maps.Clone(extra)
	maps.Copy(merged, out)
	return json.Marshal(merged)
}
