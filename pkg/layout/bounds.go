package layout

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/config"
)

// Buffer is the margin kept between nodes and the viewport edge, before
// zoom scaling.
const Buffer = 50.0

// Axis selects a coordinate.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// dimension returns the viewport extent along a.
func dimension(a Axis, cfg *config.Config) float64 {
	if a == AxisY {
		return cfg.Height
	}
	return cfg.Width
}

// scale sanitizes a zoom transform. Non-positive or non-finite transforms
// count as 1.
func scale(transform float64) float64 {
	if transform <= 0 || math.IsNaN(transform) || math.IsInf(transform, 0) {
		return 1
	}
	return transform
}

// Bounds returns the valid range for axis a at the given zoom transform:
// [Buffer/t, (dimension-Buffer)/t].
func Bounds(a Axis, cfg *config.Config, transform float64) (lo, hi float64) {
	t := scale(transform)
	return Buffer / t, (dimension(a, cfg) - Buffer) / t
}

// Clamp constrains position to Bounds. Non-finite positions return the
// lower bound.
func Clamp(position float64, a Axis, cfg *config.Config, transform float64) float64 {
	lo, hi := Bounds(a, cfg, transform)
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return lo
	}
	return math.Max(lo, math.Min(hi, position))
}
