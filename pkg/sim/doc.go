// Package sim drives a small force simulation over a graph.
//
// It is the tick source for the layout and descriptor stages, not a general
// physics engine. The schedule follows the usual d3-force defaults:
//
//	alpha         1
//	alphaMin      0.001
//	alphaDecay    1 - alphaMin^(1/300)
//	velocityDecay 0.4
//
// Each tick moves alpha toward the configured alpha target, applies the
// centering, link, charge and collision forces, integrates velocities and
// then calls every registered tick handler. Handlers run synchronously and
// may mutate node positions; the next tick starts only after all of them
// return.
//
// Run stops when alpha falls below alphaMin, the tick budget is spent, or
// the context is cancelled. Cancellation is checked between ticks only.
//
//	s := sim.New(data, idx, &cfg, sim.WithRadius(radius))
//	s.OnTick(func(t sim.Tick) { ... })
//	n, err := s.Run(ctx, 300)
package sim
