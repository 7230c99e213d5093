package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.LayoutMode.Name() != LayoutDefault {
		t.Errorf("default layout = %q", cfg.LayoutMode.Name())
	}
	if cfg.Node.HighlightColor.Set {
		t.Error("default node highlight color should keep the base color")
	}
}

func TestDecodeTOML(t *testing.T) {
	input := `
width = 1200
height = 900
highlight_degree = 2
automatic_layout_on = true
layout_mode = ["STRONGFLOW"]

[d3]
max_degrees = 6

[node]
highlight_color = "red"
highlight_stroke_color = "SAME"
highlight_stroke_width = 3

[link]
highlight_color = "blue"
semantic_stroke_width = true
`
	cfg, err := DecodeTOML([]byte(input))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}

	if cfg.Width != 1200 || cfg.Height != 900 {
		t.Errorf("viewport = %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.MaxZoom != 8 {
		t.Errorf("missing keys should keep defaults, max_zoom = %g", cfg.MaxZoom)
	}
	if cfg.LayoutMode.Name() != LayoutStrongFlow {
		t.Errorf("layout = %q", cfg.LayoutMode.Name())
	}
	if cfg.D3.MaxDegrees != 6 {
		t.Errorf("max_degrees = %d", cfg.D3.MaxDegrees)
	}
	if got := cfg.Node.HighlightColor.Or("base"); got != "red" {
		t.Errorf("node highlight color = %q", got)
	}
	if got := cfg.Node.HighlightStrokeColor.Or("base"); got != "base" {
		t.Errorf("SAME should keep base, got %q", got)
	}
	if got := cfg.Node.HighlightStrokeWidth.Or(1); got != 3 {
		t.Errorf("highlight stroke width = %g", got)
	}
	if !cfg.Link.SemanticStrokeWidth {
		t.Error("semantic_stroke_width not decoded")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDecodeTOMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `width = `},
		{"unknown key", `colour = "red"`},
		{"bad override", "[node]\nhighlight_stroke_width = \"wide\""},
		{"bad layout", `layout_mode = 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTOML([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	input := `{
		"width": 640,
		"height": 480,
		"directed": true,
		"layoutMode": "WEAKTREE",
		"node": {"highlightColor": "SAME", "highlightStrokeWidth": 2.5},
		"link": {"highlightColor": "#f00"}
	}`
	cfg, err := DecodeJSON([]byte(input))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !cfg.Directed || cfg.Width != 640 {
		t.Errorf("decoded %+v", cfg)
	}
	if cfg.LayoutMode.Name() != LayoutWeakTree {
		t.Errorf("layout = %q", cfg.LayoutMode.Name())
	}
	if cfg.Node.HighlightColor.Set {
		t.Error("SAME should decode as unset")
	}
	if cfg.Node.HighlightStrokeWidth.Or(0) != 2.5 {
		t.Errorf("highlight stroke width = %v", cfg.Node.HighlightStrokeWidth)
	}

	if _, err := DecodeJSON([]byte(`{"bogus": 1}`)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown field should fail, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"zero max degrees", func(c *Config) { c.D3.MaxDegrees = 0 }, errors.ErrCodeInvalidConfig},
		{"negative max degrees", func(c *Config) { c.D3.MaxDegrees = -2 }, errors.ErrCodeInvalidConfig},
		{"tiny viewport", func(c *Config) { c.Width = 60 }, errors.ErrCodeInvalidConfig},
		{"zero max zoom", func(c *Config) { c.MaxZoom = 0 }, errors.ErrCodeInvalidConfig},
		{"min zoom above max", func(c *Config) { c.MinZoom = 10 }, errors.ErrCodeInvalidConfig},
		{"highlight degree 3", func(c *Config) { c.HighlightDegree = 3 }, errors.ErrCodeInvalidConfig},
		{"opacity above 1", func(c *Config) { c.HighlightOpacity = 1.5 }, errors.ErrCodeInvalidConfig},
		{"bad hex", func(c *Config) { c.Node.Color = "#xyz" }, errors.ErrCodeInvalidConfig},
		{"bad override hex", func(c *Config) { c.Link.HighlightColor = Use("#12") }, errors.ErrCodeInvalidConfig},
		{"two layouts", func(c *Config) { c.LayoutMode = LayoutSpec{values: []string{"WEAKTREE", "WEAKFLOW"}} }, errors.ErrCodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateReportsFirstBadColor(t *testing.T) {
	cfg := Default()
	cfg.Node.Color = "#xyz"
	cfg.Link.Color = "#12"
	cfg.Link.FontColor = "#q"

	for range 20 {
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "node.color") {
			t.Fatalf("Validate() = %v, want node.color reported first", err)
		}
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := map[string]string{
		"#F00":    "#ff0000",
		"#d3d3d3": "#d3d3d3",
		"red":     "red",
		"none":    "none",
		"#nope":   "#nope",
	}
	for in, want := range tests {
		if got := NormalizeColor(in); got != want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Node.HighlightColor = Use("orange")
	cfg.LayoutMode = Layout(LayoutWeakFlow)

	var buf bytes.Buffer
	if err := WriteTOML(cfg, &buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	if !strings.Contains(buf.String(), `highlight_stroke_color = "SAME"`) {
		t.Errorf("expected SAME keyword in output:\n%s", buf.String())
	}

	back, err := DecodeTOML(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeTOML: %v\n%s", err, buf.String())
	}
	if back.Node.HighlightColor.Or("") != "orange" {
		t.Errorf("highlight color lost: %v", back.Node.HighlightColor)
	}
	if back.LayoutMode.Name() != LayoutWeakFlow {
		t.Errorf("layout lost: %q", back.LayoutMode.Name())
	}
	if back.Node.HighlightStrokeWidth.Set {
		t.Error("SAME stroke width should stay unset")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(tomlPath, []byte("width = 300\nheight = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(tomlPath)
	if err != nil || cfg.Width != 300 {
		t.Fatalf("Load toml = %+v, %v", cfg.Width, err)
	}

	jsonPath := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(jsonPath, []byte(`{"width": 500}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(jsonPath)
	if err != nil || cfg.Width != 500 {
		t.Fatalf("Load json = %+v, %v", cfg.Width, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "graph.yaml")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("bad extension: %v", err)
	}
}

func TestOverride(t *testing.T) {
	if got := Same[string]().Or("base"); got != "base" {
		t.Errorf("Same.Or = %q", got)
	}
	if got := Use("x").Or("base"); got != "x" {
		t.Errorf("Use.Or = %q", got)
	}
	if Same[float64]().String() != KeepSame {
		t.Error("unset override should print SAME")
	}
}
