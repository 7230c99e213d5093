package layout

import (
	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// PositionForDegree maps a node degree to a coordinate along a.
//
// The degree is normalized to min(maxDegrees, degree) - 1, floored at 0.
// An unknown degree (graph.UnknownDegree) is treated as maxDegrees. The
// result is normalized × ((dimension - Buffer)/t) / maxDegrees.
//
// cfg must have passed Validate, which guarantees maxDegrees >= 1.
func PositionForDegree(degree int, a Axis, cfg *config.Config, transform float64) float64 {
	maxDegrees := cfg.D3.MaxDegrees
	if degree == graph.UnknownDegree {
		degree = maxDegrees
	}
	n := max(min(maxDegrees, degree)-1, 0)
	span := (dimension(a, cfg) - Buffer) / scale(transform)
	return float64(n) * span / float64(maxDegrees)
}
