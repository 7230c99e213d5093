// Package pkg holds the forcegraph libraries.
//
// A graph flows through them in this order:
//
//	JSON node-link graph + TOML config
//	         ↓
//	    [graph], [config]    load, validate, index, degrees
//	         ↓
//	    [sim]                force simulation, one tick at a time
//	         ↓
//	    [layout]             per-link position constraints and clamping
//	         ↓
//	    [render]             node, link and marker descriptors per tick
//	         ↓
//	    [render/sink]        SVG, JSON, DOT, PNG, PDF
//
// [pipeline] runs the sequence with caching through [cache];
// [observability] exposes hooks for ticks, cache lookups and requests.
//
// Quick start:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    GraphPath:  "family.json",
//	    ConfigPath: "forcegraph.toml",
//	    Formats:    []string{"svg"},
//	})
package pkg
