package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/forcegraph/pkg/render"
	"github.com/matzehuels/forcegraph/pkg/render/sink"
)

// Render writes the frame in every requested format.
func Render(ctx context.Context, f render.Frame, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, f, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat writes the frame in a single format.
func RenderFormat(ctx context.Context, f render.Frame, format string, opts Options) ([]byte, error) {
	svgOpts := svgOptions(opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(f, svgOpts...), nil
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.LayoutName != "" || opts.Layout.IsCustom() {
			jsonOpts = append(jsonOpts, sink.WithJSONLayout(modeName(opts)))
		}
		return sink.RenderJSON(f, jsonOpts...)
	case FormatDOT:
		return []byte(sink.ToDOT(f, sink.WithDOTLabels())), nil
	case FormatGraphviz:
		return sink.RenderDOTSVG(ctx, sink.ToDOT(f, sink.WithDOTLabels()))
	case FormatPNG:
		return sink.RenderPNG(ctx, f, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, f, svgOpts...)
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	return out
}

func modeName(opts Options) string {
	if opts.Layout.IsCustom() {
		return opts.Layout.String()
	}
	return opts.LayoutName
}
