// Package render turns simulated graph state into render descriptors.
//
// # Overview
//
// A [Builder] is created once per configuration. On every tick it takes a
// [Scene] (the live nodes and links, the highlight state, the zoom
// transform and the current alpha) and produces a [Frame]: one [NodeProps]
// per node and one [LinkProps] per link. Descriptors are flat values; the
// [sink] subpackage writes them as SVG, JSON or Graphviz DOT.
//
//	b := render.NewBuilder(&cfg, render.WithMarkers(render.NewMarkerResolver()))
//	frame := b.BuildFrame(&render.Scene{
//	    Data:      data,
//	    Index:     idx,
//	    Weights:   weights,
//	    Transform: 1,
//	    Alpha:     tick.Alpha,
//	})
//
// When automatic layout is enabled, [Builder.BuildLinkProps] runs the layout
// strategy for the link before reading endpoint positions, so a frame always
// reflects the adjusted positions.
//
// # Highlighting
//
// [Highlight] names a focused node or link. [Highlight.Expand] spreads a
// node focus to its neighbors according to the highlight degree. Links and
// nodes outside the highlight are drawn at the configured highlight opacity.
//
// # Markers
//
// Directed graphs reference arrow markers by id. [MarkerResolver] picks
// small, medium or large markers from the zoom transform relative to
// maxZoom and memoizes the result:
//
//	m.Resolve(0.5, "red", 20) // "marker-small-red"
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool.
//
// [sink]: github.com/matzehuels/forcegraph/pkg/render/sink
package render
