package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Link path shapes.
const (
	LinkStraight    = "STRAIGHT"
	LinkCurveSmooth = "CURVE_SMOOTH"
	LinkCurveFull   = "CURVE_FULL"
)

// Config is the full graph configuration.
type Config struct {
	Width             float64    `toml:"width" json:"width"`
	Height            float64    `toml:"height" json:"height"`
	MaxZoom           float64    `toml:"max_zoom" json:"maxZoom"`
	MinZoom           float64    `toml:"min_zoom" json:"minZoom"`
	HighlightDegree   int        `toml:"highlight_degree" json:"highlightDegree"`
	HighlightOpacity  float64    `toml:"highlight_opacity" json:"highlightOpacity"`
	AutomaticLayoutOn bool       `toml:"automatic_layout_on" json:"automaticLayoutOn"`
	Directed          bool       `toml:"directed" json:"directed"`
	LayoutMode        LayoutSpec `toml:"layout_mode" json:"layoutMode"`

	D3   D3Config   `toml:"d3" json:"d3"`
	Node NodeConfig `toml:"node" json:"node"`
	Link LinkConfig `toml:"link" json:"link"`
}

// D3Config holds physics parameters.
type D3Config struct {
	// MaxDegrees normalizes degree-based placement. Must be >= 1.
	MaxDegrees       int     `toml:"max_degrees" json:"maxDegrees"`
	Gravity          float64 `toml:"gravity" json:"gravity"`
	LinkLength       float64 `toml:"link_length" json:"linkLength"`
	LinkStrength     float64 `toml:"link_strength" json:"linkStrength"`
	AlphaTarget      float64 `toml:"alpha_target" json:"alphaTarget"`
	DisableLinkForce bool    `toml:"disable_link_force" json:"disableLinkForce"`
}

// NodeConfig holds node style defaults.
type NodeConfig struct {
	Color                string            `toml:"color" json:"color"`
	Size                 float64           `toml:"size" json:"size"`
	Width                float64           `toml:"width" json:"width"`
	Height               float64           `toml:"height" json:"height"`
	Opacity              float64           `toml:"opacity" json:"opacity"`
	StrokeColor          string            `toml:"stroke_color" json:"strokeColor"`
	StrokeWidth          float64           `toml:"stroke_width" json:"strokeWidth"`
	SelectedStrokeColor  string            `toml:"selected_stroke_color" json:"selectedStrokeColor"`
	FontSize             float64           `toml:"font_size" json:"fontSize"`
	FontColor            string            `toml:"font_color" json:"fontColor"`
	FontWeight           string            `toml:"font_weight" json:"fontWeight"`
	HighlightColor       Override[string]  `toml:"highlight_color" json:"highlightColor"`
	HighlightStrokeColor Override[string]  `toml:"highlight_stroke_color" json:"highlightStrokeColor"`
	HighlightStrokeWidth Override[float64] `toml:"highlight_stroke_width" json:"highlightStrokeWidth"`
	HighlightFontSize    float64           `toml:"highlight_font_size" json:"highlightFontSize"`
	HighlightFontWeight  Override[string]  `toml:"highlight_font_weight" json:"highlightFontWeight"`
	LabelProperty        string            `toml:"label_property" json:"labelProperty"`
	SymbolType           string            `toml:"symbol_type" json:"symbolType"`
	SVG                  string            `toml:"svg" json:"svg"`
	MouseCursor          string            `toml:"mouse_cursor" json:"mouseCursor"`
	RenderLabel          bool              `toml:"render_label" json:"renderLabel"`

	// LabelFunc, when set, derives the label from the node and takes
	// precedence over LabelProperty.
	LabelFunc func(*graph.Node) string `toml:"-" json:"-"`
}

// LinkConfig holds link style defaults.
type LinkConfig struct {
	Color               string           `toml:"color" json:"color"`
	Opacity             float64          `toml:"opacity" json:"opacity"`
	StrokeWidth         float64          `toml:"stroke_width" json:"strokeWidth"`
	SelectedStrokeColor string           `toml:"selected_stroke_color" json:"selectedStrokeColor"`
	FontSize            float64          `toml:"font_size" json:"fontSize"`
	FontColor           string           `toml:"font_color" json:"fontColor"`
	FontWeight          string           `toml:"font_weight" json:"fontWeight"`
	HighlightColor      Override[string] `toml:"highlight_color" json:"highlightColor"`
	HighlightFontSize   float64          `toml:"highlight_font_size" json:"highlightFontSize"`
	HighlightFontWeight Override[string] `toml:"highlight_font_weight" json:"highlightFontWeight"`
	Type                string           `toml:"type" json:"type"`
	LabelProperty       string           `toml:"label_property" json:"labelProperty"`
	RenderLabel         bool             `toml:"render_label" json:"renderLabel"`
	SemanticStrokeWidth bool             `toml:"semantic_stroke_width" json:"semanticStrokeWidth"`
	ClassName           string           `toml:"class_name" json:"className"`
	MouseCursor         string           `toml:"mouse_cursor" json:"mouseCursor"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Width:             800,
		Height:            400,
		MaxZoom:           8,
		MinZoom:           0.1,
		HighlightDegree:   1,
		HighlightOpacity:  1,
		AutomaticLayoutOn: false,
		Directed:          false,
		LayoutMode:        Layout(LayoutDefault),
		D3: D3Config{
			MaxDegrees:   1,
			Gravity:      -100,
			LinkLength:   100,
			LinkStrength: 1,
			AlphaTarget:  0.05,
		},
		Node: NodeConfig{
			Color:                "#d3d3d3",
			Size:                 200,
			Opacity:              1,
			StrokeColor:          "none",
			StrokeWidth:          1.5,
			SelectedStrokeColor:  "#000000",
			FontSize:             8,
			FontColor:            "black",
			FontWeight:           "normal",
			HighlightColor:       Same[string](),
			HighlightStrokeColor: Same[string](),
			HighlightStrokeWidth: Same[float64](),
			HighlightFontSize:    8,
			HighlightFontWeight:  Use("normal"),
			LabelProperty:        "id",
			SymbolType:           "circle",
			MouseCursor:          "pointer",
			RenderLabel:          true,
		},
		Link: LinkConfig{
			Color:               "#d3d3d3",
			Opacity:             1,
			StrokeWidth:         1.5,
			SelectedStrokeColor: "#000000",
			FontSize:            8,
			FontColor:           "black",
			FontWeight:          "normal",
			HighlightColor:      Same[string](),
			HighlightFontSize:   8,
			HighlightFontWeight: Use("normal"),
			Type:                LinkStraight,
			LabelProperty:       "label",
			RenderLabel:         false,
			SemanticStrokeWidth: false,
			MouseCursor:         "pointer",
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads a TOML or JSON config file (chosen by extension) over the
// defaults. The result is not validated.
func Load(path string) (Config, error) {
	if err := errors.ValidateConfigPath(path); err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(data)
	}
	return DecodeTOML(data)
}

// DecodeTOML decodes TOML over the defaults.
func DecodeTOML(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DecodeJSON decodes JSON over the defaults.
func DecodeJSON(data []byte) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
	}
	return cfg, nil
}

// WriteTOML encodes cfg as TOML.
func WriteTOML(cfg Config, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}
