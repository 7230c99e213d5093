package render

import (
	"encoding/json"
	"fmt"
)

// Marker is an arrow marker referenced by at least one link in a frame.
type Marker struct {
	ID    string     `json:"id"`
	Size  MarkerSize `json:"size"`
	Color string     `json:"color"`
}

// Frame holds every descriptor for one tick.
type Frame struct {
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Transform float64     `json:"transform"`
	Directed  bool        `json:"directed"`
	Tick      int         `json:"tick"`
	Alpha     float64     `json:"alpha"`
	Markers   []Marker    `json:"markers,omitempty"`
	Links     []LinkProps `json:"links"`
	Nodes     []NodeProps `json:"nodes"`
}

// Node returns the descriptor for id.
func (f *Frame) Node(id string) (*NodeProps, bool) {
	for i := range f.Nodes {
		if string(f.Nodes[i].ID) == id {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

// HighlightedLinks counts links drawn as highlighted.
func (f *Frame) HighlightedLinks() int {
	n := 0
	for i := range f.Links {
		if f.Links[i].Highlighted {
			n++
		}
	}
	return n
}

// MarshalFrame encodes a frame as indented JSON.
func MarshalFrame(f Frame) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	return data, nil
}

// UnmarshalFrame decodes a frame written by MarshalFrame. Callbacks and
// extra node fields are not restored.
func UnmarshalFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("unmarshal frame: %w", err)
	}
	return f, nil
}
