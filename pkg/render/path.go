package render

import (
	"math"
	"strconv"

	"github.com/matzehuels/forcegraph/pkg/config"
)

// arcRadius returns the SVG arc radius for a link shape. Unknown shapes
// are drawn straight.
func arcRadius(shape string, sx, sy, tx, ty float64) float64 {
	switch shape {
	case config.LinkCurveSmooth:
		return math.Hypot(tx-sx, ty-sy)
	case config.LinkCurveFull:
		return 1
	default:
		return 0
	}
}

// PathDefinition returns the SVG path for a link from (sx, sy) to
// (tx, ty):
//
//	M{sx},{sy}A{r},{r} 0 0,1 {tx},{ty}
//
// A zero radius draws a straight line.
func PathDefinition(shape string, sx, sy, tx, ty float64) string {
	r := num(arcRadius(shape, sx, sy, tx, ty))
	return "M" + num(sx) + "," + num(sy) +
		"A" + r + "," + r + " 0 0,1 " +
		num(tx) + "," + num(ty)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
