package config

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// MinViewport is the smallest accepted width or height. Boundary clamping
// keeps a fixed margin on both sides, so smaller viewports have no valid
// positions.
const MinViewport = 100

// Validate checks the configuration preconditions. It must pass before a
// simulation starts; violations are INVALID_CONFIG (or INVALID_LAYOUT)
// errors and are never tolerated per tick.
func (c *Config) Validate() error {
	if c.Width < MinViewport || c.Height < MinViewport {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport must be at least %dx%d, got %gx%g", MinViewport, MinViewport, c.Width, c.Height)
	}
	if c.MaxZoom <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_zoom must be > 0, got %g", c.MaxZoom)
	}
	if c.MinZoom <= 0 || c.MinZoom > c.MaxZoom {
		return errors.New(errors.ErrCodeInvalidConfig, "min_zoom must be in (0, max_zoom], got %g", c.MinZoom)
	}
	if c.HighlightDegree < 0 || c.HighlightDegree > 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "highlight_degree must be 0, 1 or 2, got %d", c.HighlightDegree)
	}
	if c.HighlightOpacity < 0 || c.HighlightOpacity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "highlight_opacity must be in [0, 1], got %g", c.HighlightOpacity)
	}
	if c.D3.MaxDegrees < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "d3.max_degrees must be >= 1, got %d", c.D3.MaxDegrees)
	}
	if err := c.LayoutMode.Validate(); err != nil {
		return err
	}

	colors := []struct{ key, value string }{
		{"node.color", c.Node.Color},
		{"node.stroke_color", c.Node.StrokeColor},
		{"node.selected_stroke_color", c.Node.SelectedStrokeColor},
		{"node.font_color", c.Node.FontColor},
		{"node.highlight_color", c.Node.HighlightColor.Value},
		{"node.highlight_stroke_color", c.Node.HighlightStrokeColor.Value},
		{"link.color", c.Link.Color},
		{"link.selected_stroke_color", c.Link.SelectedStrokeColor},
		{"link.font_color", c.Link.FontColor},
		{"link.highlight_color", c.Link.HighlightColor.Value},
	}
	for _, col := range colors {
		if err := ValidateColor(col.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", col.key)
		}
	}
	return nil
}

// ValidateColor accepts named colors and well-formed hex colors (#rgb or
// #rrggbb). Empty values are accepted and mean "unset".
func ValidateColor(c string) error {
	if !strings.HasPrefix(c, "#") {
		return nil
	}
	if _, err := colorful.Hex(c); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid hex color %q", c)
	}
	return nil
}

// NormalizeColor expands hex colors to lowercase #rrggbb. Other values are
// returned unchanged.
func NormalizeColor(c string) string {
	if !strings.HasPrefix(c, "#") {
		return c
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return c
	}
	return col.Hex()
}
