package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// UnknownDegree marks a node whose degree has not been computed.
const UnknownDegree = -1

// ID identifies a node. JSON numbers and strings are both accepted; numbers
// are compared by value.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = numericID(n)
	return nil
}

// numericID formats a JSON number canonically so 1, 1.0 and 1e0 name the
// same node. Integers keep full precision.
func numericID(n json.Number) ID {
	if i, err := n.Int64(); err == nil {
		return ID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil && isFinite(f) {
		return ID(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return ID(n.String())
}

// String returns the id text.
func (id ID) String() string { return string(id) }

// Node is a graph vertex. Optional numeric fields use zero for "unset",
// matching how the render stage falls back to configuration defaults.
type Node struct {
	ID ID

	// X and Y are NaN until the simulation places the node.
	X, Y float64
	// VX and VY are simulation velocities.
	VX, VY float64
	// FX and FY pin the node while it is dragged.
	FX, FY *float64

	Degree int

	Size        float64
	Width       float64
	Height      float64
	Opacity     float64
	StrokeWidth float64

	Color       string
	StrokeColor string
	FontColor   string
	SVG         string
	SymbolType  string

	Highlighted        bool
	Selected           bool
	PreviouslySelected bool

	// Extra holds every input field not mapped above.
	Extra map[string]any
}

// Placed reports whether the node has finite coordinates.
func (n *Node) Placed() bool {
	return isFinite(n.X) && isFinite(n.Y)
}

// Prop returns the textual value of a named node property. Known fields
// are looked up by their JSON name first, then Extra. Empty values report
// false.
func (n *Node) Prop(name string) (string, bool) {
	var v string
	switch name {
	case "id":
		v = string(n.ID)
	case "color":
		v = n.Color
	case "strokeColor":
		v = n.StrokeColor
	case "fontColor":
		v = n.FontColor
	case "svg":
		v = n.SVG
	case "symbolType":
		v = n.SymbolType
	default:
		return extraString(n.Extra, name)
	}
	return v, v != ""
}

// Link is a connection between two nodes.
type Link struct {
	Source ID
	Target ID

	// Value is the link weight. Zero means unset.
	Value       float64
	StrokeWidth float64
	Opacity     float64
	FontSize    float64

	Color     string
	FontColor string
	ClassName string

	Selected           bool
	PreviouslySelected bool

	Extra map[string]any
}

// Ref returns the (source, target) pair of the link.
func (l *Link) Ref() LinkRef { return LinkRef{Source: l.Source, Target: l.Target} }

// Prop returns the textual value of a named link property.
func (l *Link) Prop(name string) (string, bool) {
	var v string
	switch name {
	case "source":
		v = string(l.Source)
	case "target":
		v = string(l.Target)
	case "color":
		v = l.Color
	case "className":
		v = l.ClassName
	default:
		return extraString(l.Extra, name)
	}
	return v, v != ""
}

// LinkRef identifies a link by its endpoints.
type LinkRef struct {
	Source ID `json:"source"`
	Target ID `json:"target"`
}

// Complete reports whether both endpoints are set.
func (r LinkRef) Complete() bool { return r.Source != "" && r.Target != "" }

// Data is the node-link graph input.
type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

func extraString(extra map[string]any, name string) (string, bool) {
	v, ok := extra[name]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	return s, s != ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NewNode returns an unplaced node with an unknown degree.
func NewNode(id ID) Node {
	return Node{ID: id, X: math.NaN(), Y: math.NaN(), Degree: UnknownDegree}
}
