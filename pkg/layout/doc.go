// Package layout adjusts node positions on every simulation tick.
//
// # Bounds
//
// [Clamp] keeps a coordinate inside the viewport minus a fixed [Buffer],
// scaled by the current zoom transform. Non-finite input collapses to the
// lower bound instead of propagating.
//
// # Degree placement
//
// [PositionForDegree] maps a node's degree to a coordinate along one axis,
// spreading nodes into bands ranked by connectivity. The STRONG strategies
// pull nodes toward these bands.
//
// # Strategies
//
// A [Strategy] receives one link per call and nudges its two endpoints:
//
//	DEFAULT     reclamp only
//	WEAKTREE    source.y -= alpha, target.y += alpha, reclamp
//	STRONGTREE  y = degree band ∓ alpha, reclamp (reclamp only while dragging)
//	WEAKFLOW    WEAKTREE on the x axis
//	STRONGFLOW  STRONGTREE on the x axis
//
// The configured layout mode is parsed once into a [Mode] (a named kind or
// a custom function) and resolved to a Strategy before the first tick:
//
//	mode := layout.ModeFromConfig(cfg.LayoutMode)
//	adjust := mode.Strategy()
//	for _, l := range links {
//	    adjust(layout.Step{...})
//	}
//
// Alpha is the only magnitude knob; it decays on the simulation's schedule.
//
// # Collision radius
//
// [CollisionRadius] derives per-node collision radii for the physics
// engine and caches the values derived from node defaults until
// reconfigured.
package layout
