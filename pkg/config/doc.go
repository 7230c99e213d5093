// Package config defines the graph configuration consumed by the layout and
// render stages.
//
// A [Config] is created once, validated, and then treated as read-only for
// the lifetime of a simulation. Reconfiguration replaces the whole value;
// nothing in the layout or render stages mutates it.
//
// # Files
//
// Configs are written in TOML (snake_case keys) or JSON (camelCase keys, the
// shape used by the HTTP API). [Load] decodes over [Default], so a file only
// needs the keys it changes:
//
//	width = 1200
//	height = 800
//	highlight_degree = 2
//	automatic_layout_on = true
//	layout_mode = "STRONGTREE"
//
//	[d3]
//	max_degrees = 6
//
//	[node]
//	highlight_color = "SAME"
//	highlight_stroke_color = "blue"
//
// # Keep-same overrides
//
// Highlight styles use [Override]. The literal "SAME" decodes to an unset
// override, meaning "keep the base value"; anything else replaces it.
//
// # Layout mode
//
// layout_mode accepts a bare string or a single-element array. The value is
// only parsed here; the layout package turns it into a strategy once at
// setup.
package config
