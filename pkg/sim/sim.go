package sim

import (
	"context"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
)

const (
	AlphaMin      = 0.001
	VelocityDecay = 0.4

	// CenterStrength is the strength of the x and y centering forces.
	CenterStrength = 0.06

	// DefaultTicks bounds Run when no budget is given.
	DefaultTicks = 300

	// reheat is the alpha a drag restores when the simulation has cooled.
	reheat = 0.3

	initialRadius = 10.0
)

var (
	// AlphaDecay cools alpha from 1 to AlphaMin in DefaultTicks ticks.
	AlphaDecay = 1 - math.Pow(AlphaMin, 1.0/DefaultTicks)

	initialAngle = math.Pi * (3 - math.Sqrt(5))
)

// Tick describes one completed integration step.
type Tick struct {
	N       int
	Alpha   float64
	Dragged bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRadius sets the collision radius policy. Without it no collision
// force is applied.
func WithRadius(r *layout.CollisionRadius) Option {
	return func(s *Simulation) { s.radius = r }
}

// WithLogger sets the logger for run summaries.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed seeds the jitter used to separate coincident nodes.
func WithSeed(seed uint64) Option {
	return func(s *Simulation) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// Simulation integrates forces over the nodes of a graph in place.
// It is not safe for concurrent use.
type Simulation struct {
	nodes []graph.Node
	links []graph.Link
	index graph.Index
	cfg   *config.Config

	radius *layout.CollisionRadius
	logger *log.Logger
	rng    *rand.Rand

	alpha       float64
	alphaTarget float64
	ticks       int
	dragging    bool

	handlers []func(Tick)

	// per-link strength and bias, indexed like links; -1 for unresolved
	strength []float64
	bias     []float64
}

// New creates a simulation over data.Nodes. Node positions are mutated in
// place; idx must index data.Nodes. Unplaced nodes receive phyllotaxis
// positions around the viewport center.
func New(data *graph.Data, idx graph.Index, cfg *config.Config, opts ...Option) *Simulation {
	s := &Simulation{
		nodes:       data.Nodes,
		links:       data.Links,
		index:       idx,
		cfg:         cfg,
		logger:      log.New(io.Discard),
		alpha:       1,
		alphaTarget: cfg.D3.AlphaTarget,
	}
	WithSeed(1)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.initNodes()
	s.initLinks()
	return s
}

// OnTick registers a handler called after every tick.
func (s *Simulation) OnTick(fn func(Tick)) {
	s.handlers = append(s.handlers, fn)
}

// Alpha returns the current alpha.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int { return s.ticks }

// Dragging reports whether a node is held by Drag.
func (s *Simulation) Dragging() bool { return s.dragging }

// Nodes returns the live node slice.
func (s *Simulation) Nodes() []graph.Node { return s.nodes }

// Run ticks until alpha drops below AlphaMin, maxTicks ticks have run, or
// ctx is done. A non-positive maxTicks uses DefaultTicks. It returns the
// number of ticks run by this call.
func (s *Simulation) Run(ctx context.Context, maxTicks int) (int, error) {
	if maxTicks <= 0 {
		maxTicks = DefaultTicks
	}
	n := 0
	for n < maxTicks && s.alpha >= AlphaMin {
		if err := ctx.Err(); err != nil {
			s.logger.Debug("simulation cancelled", "ticks", n, "alpha", s.alpha)
			return n, err
		}
		s.Step()
		n++
	}
	s.logger.Debug("simulation stopped", "ticks", n, "alpha", s.alpha)
	return n, nil
}

// Step runs a single tick and notifies handlers.
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * AlphaDecay

	s.forceCenter()
	if !s.cfg.D3.DisableLinkForce {
		s.forceLink()
	}
	s.forceCharge()
	if s.radius != nil {
		s.forceCollide()
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.FX != nil {
			n.X, n.VX = *n.FX, 0
		} else {
			n.VX *= 1 - VelocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y, n.VY = *n.FY, 0
		} else {
			n.VY *= 1 - VelocityDecay
			n.Y += n.VY
		}
	}

	s.ticks++
	t := Tick{N: s.ticks, Alpha: s.alpha, Dragged: s.dragging}
	for _, h := range s.handlers {
		h(t)
	}
}

// Drag pins the node with the given id at (x, y) and marks the simulation
// as dragging until Release. It reports false if id is unknown.
func (s *Simulation) Drag(id graph.ID, x, y float64) bool {
	n := s.index.Resolve(s.nodes, id)
	if n == nil {
		return false
	}
	n.FX, n.FY = &x, &y
	s.dragging = true
	if s.alpha < reheat {
		s.alpha = reheat
	}
	return true
}

// Release ends a drag. The node stays pinned until Unpin.
func (s *Simulation) Release() {
	s.dragging = false
}

// Unpin frees a node pinned by Drag.
func (s *Simulation) Unpin(id graph.ID) {
	if n := s.index.Resolve(s.nodes, id); n != nil {
		n.FX, n.FY = nil, nil
	}
}

// Reconfigure swaps the configuration and the collision radius defaults
// before the next tick.
func (s *Simulation) Reconfigure(cfg *config.Config) {
	s.cfg = cfg
	s.alphaTarget = cfg.D3.AlphaTarget
	if s.radius != nil {
		s.radius.Configure(cfg.Node)
	}
	s.initLinks()
}

// =============================================================================
// Initialization
// =============================================================================

func (s *Simulation) initNodes() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	for i := range s.nodes {
		n := &s.nodes[i]
		if !n.Placed() {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			n.X, n.Y = cx+r*math.Cos(a), cy+r*math.Sin(a)
		}
		if !finite(n.VX) || !finite(n.VY) {
			n.VX, n.VY = 0, 0
		}
	}
}

func (s *Simulation) initLinks() {
	count := make([]int, len(s.nodes))
	for _, l := range s.links {
		si, ok1 := s.index.Lookup(l.Source)
		ti, ok2 := s.index.Lookup(l.Target)
		if ok1 && ok2 {
			count[si]++
			count[ti]++
		}
	}
	s.strength = make([]float64, len(s.links))
	s.bias = make([]float64, len(s.links))
	for i, l := range s.links {
		si, ok1 := s.index.Lookup(l.Source)
		ti, ok2 := s.index.Lookup(l.Target)
		if !ok1 || !ok2 {
			s.strength[i] = -1
			continue
		}
		s.strength[i] = s.cfg.D3.LinkStrength / float64(min(count[si], count[ti]))
		s.bias[i] = float64(count[si]) / float64(count[si]+count[ti])
	}
}

// =============================================================================
// Forces
// =============================================================================

func (s *Simulation) forceCenter() {
	cx, cy := s.cfg.Width/2, s.cfg.Height/2
	k := CenterStrength * s.alpha
	for i := range s.nodes {
		n := &s.nodes[i]
		n.VX += (cx - n.X) * k
		n.VY += (cy - n.Y) * k
	}
}

func (s *Simulation) forceLink() {
	distance := s.cfg.D3.LinkLength
	for i, l := range s.links {
		if s.strength[i] < 0 {
			continue
		}
		src := s.index.Resolve(s.nodes, l.Source)
		tgt := s.index.Resolve(s.nodes, l.Target)
		if src == tgt {
			continue
		}
		x := tgt.X + tgt.VX - src.X - src.VX
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if x == 0 {
			x = s.jiggle()
		}
		if y == 0 {
			y = s.jiggle()
		}
		d := math.Hypot(x, y)
		k := (d - distance) / d * s.alpha * s.strength[i]
		x, y = x*k, y*k
		b := s.bias[i]
		tgt.VX -= x * b
		tgt.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}

// forceCharge applies the many-body force pairwise.
func (s *Simulation) forceCharge() {
	k := s.cfg.D3.Gravity * s.alpha
	if k == 0 {
		return
	}
	for i := range s.nodes {
		a := &s.nodes[i]
		for j := range s.nodes {
			if i == j {
				continue
			}
			b := &s.nodes[j]
			x, y := b.X-a.X, b.Y-a.Y
			if x == 0 {
				x = s.jiggle()
			}
			if y == 0 {
				y = s.jiggle()
			}
			l := x*x + y*y
			if l < 1 {
				l = math.Sqrt(l)
			}
			a.VX += x * k / l
			a.VY += y * k / l
		}
	}
}

func (s *Simulation) forceCollide() {
	for i := range s.nodes {
		a := &s.nodes[i]
		ra := s.radius.Radius(a)
		for j := i + 1; j < len(s.nodes); j++ {
			b := &s.nodes[j]
			rb := s.radius.Radius(b)
			r := ra + rb
			x := a.X + a.VX - b.X - b.VX
			y := a.Y + a.VY - b.Y - b.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = s.jiggle()
				l += x * x
			}
			if y == 0 {
				y = s.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			k := (r - d) / d
			x, y = x*k, y*k
			share := rb * rb / (ra*ra + rb*rb)
			a.VX += x * share
			a.VY += y * share
			b.VX -= x * (1 - share)
			b.VY -= y * (1 - share)
		}
	}
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
