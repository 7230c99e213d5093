package layout

import (
	"math"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

const (
	// RadiusCollide is the fallback radius when neither the node nor the
	// defaults carry a usable size.
	RadiusCollide = 25.0

	// CollidePadding is added to every derived radius.
	CollidePadding = 1.5
)

// CollisionRadius derives per-node collision radii. Values derived from
// the node defaults are cached and recomputed by Configure.
type CollisionRadius struct {
	nodeSize     float64
	nodeDiagHalf float64
	generation   int
}

// NewCollisionRadius returns a radius policy for the given node defaults.
func NewCollisionRadius(defaults config.NodeConfig) *CollisionRadius {
	c := &CollisionRadius{}
	c.Configure(defaults)
	return c
}

// Configure recomputes the cached default-derived values.
func (c *CollisionRadius) Configure(defaults config.NodeConfig) {
	c.nodeSize = 0
	c.nodeDiagHalf = 0
	if defaults.Size > 0 {
		c.nodeSize = defaults.Size / 10 / 2
	}
	if defaults.Width > 0 && defaults.Height > 0 {
		c.nodeDiagHalf = halfDiagonal(defaults.Width, defaults.Height)
	}
	c.generation++
}

// Generation counts Configure calls.
func (c *CollisionRadius) Generation() int { return c.generation }

// Radius returns the collision radius for n, trying in order: the node's
// own width and height, the node's size, the default width and height,
// the default size, then RadiusCollide. CollidePadding is always added.
func (c *CollisionRadius) Radius(n *graph.Node) float64 {
	var r float64
	switch {
	case n != nil && n.Width > 0 && n.Height > 0:
		r = halfDiagonal(n.Width, n.Height)
	case n != nil && n.Size > 0:
		r = n.Size / 10 / 2
	case c.nodeDiagHalf > 0:
		r = c.nodeDiagHalf
	case c.nodeSize > 0:
		r = c.nodeSize
	default:
		r = RadiusCollide
	}
	return r + CollidePadding
}

// halfDiagonal of a box whose sides are given in tenths of a pixel.
func halfDiagonal(w, h float64) float64 {
	return math.Hypot(w/10, h/10) / 2
}
