// Package sink writes a [render.Frame] in output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG with arrow marker defs, d3-style node
//     symbols, box nodes as rects and inline node SVG images
//   - [RenderJSON]: the frame descriptors as JSON
//   - [ToDOT] / [RenderDOTSVG]: Graphviz DOT with pinned positions, drawn by
//     the neato engine
//   - [RenderPNG] / [RenderPDF]: SVG converted with rsvg-convert
//
// Every writer takes functional options:
//
//	svg := sink.RenderSVG(frame, sink.WithTitle("team"), sink.WithBackground("#ffffff"))
//
// Node positions in a frame are in zoomed coordinates; the SVG writer wraps
// the content in a scale(transform) group so the drawing matches the
// viewport.
package sink
