package sink

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors maps the CSS names used in default configurations to hex.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"orange":    "#ffa500",
	"yellow":    "#ffff00",
	"purple":    "#800080",
}

// dotColor returns a Graphviz "#rrggbbaa" color with the opacity folded
// into the alpha channel. "none" and empty colors are transparent.
func dotColor(c string, opacity float64) string {
	if c == "" || c == "none" || c == "transparent" {
		return "transparent"
	}
	if hex, ok := namedColors[c]; ok {
		c = hex
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return c
	}
	a := int(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return col.Clamped().Hex() + hexByte(a)
}

func hexByte(v int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0x0f]})
}

func sqrtArea(area float64) float64 {
	return math.Sqrt(area / math.Pi)
}
