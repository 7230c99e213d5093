package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcegraph/pkg/render"
)

// pointsPerInch converts frame pixels to Graphviz pin coordinates.
const pointsPerInch = 72.0

// DOTOption configures DOT generation.
type DOTOption func(*dotRenderer)

type dotRenderer struct {
	labels bool
}

// WithDOTLabels keeps node labels in the DOT output. Without it nodes are
// drawn unlabeled.
func WithDOTLabels() DOTOption { return func(r *dotRenderer) { r.labels = true } }

// ToDOT converts a frame to Graphviz DOT. Node positions are pinned
// ("x,y!") so the neato engine keeps the simulated layout; y is flipped
// because Graphviz grows upward.
func ToDOT(f render.Frame, opts ...DOTOption) string {
	r := dotRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	kind, arrow := "graph", "--"
	if f.Directed {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", fmtNum(f.Width), fmtNum(f.Height))
	buf.WriteString("  node [style=filled, fixedsize=true, fontsize=8];\n")
	buf.WriteString("\n")

	for i := range f.Nodes {
		n := &f.Nodes[i]
		fmt.Fprintf(&buf, "  %q [%s];\n", string(n.ID), strings.Join(nodeAttrs(n, f, r.labels), ", "))
	}

	buf.WriteString("\n")
	for i := range f.Links {
		l := &f.Links[i]
		attrs := []string{
			fmt.Sprintf("color=%q", dotColor(l.Stroke, l.Opacity)),
			fmt.Sprintf("penwidth=%s", fmtNum(l.StrokeWidth)),
		}
		if l.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", l.Label))
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", string(l.Source), arrow, string(l.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *render.NodeProps, f render.Frame, labels bool) []string {
	scale := f.Transform
	if scale <= 0 {
		scale = 1
	}
	x := n.CX * scale
	y := f.Height - n.CY*scale

	label := ""
	if labels && n.RenderLabel {
		label = n.Label
	}
	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtNum(x), fmtNum(y)),
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", dotColor(n.Fill, n.Opacity)),
		fmt.Sprintf("color=%q", dotColor(n.Stroke, n.Opacity)),
		fmt.Sprintf("penwidth=%s", fmtNum(n.StrokeWidth)),
	}
	if n.Width > 0 && n.Height > 0 {
		attrs = append(attrs, "shape=box",
			fmt.Sprintf("width=%s", fmtNum(n.Width/10/pointsPerInch)),
			fmt.Sprintf("height=%s", fmtNum(n.Height/10/pointsPerInch)))
	} else {
		attrs = append(attrs, fmt.Sprintf("shape=%s", dotShape(n.Type)),
			fmt.Sprintf("width=%s", fmtNum(symbolDiameter(n.Size)/pointsPerInch)))
	}
	return attrs
}

func dotShape(symbol string) string {
	switch symbol {
	case SymbolSquare:
		return "square"
	case SymbolDiamond:
		return "diamond"
	case SymbolTriangle:
		return "triangle"
	case SymbolStar:
		return "star"
	default:
		return "circle"
	}
}

// symbolDiameter returns the width of a circle with the given area.
func symbolDiameter(area float64) float64 {
	if area <= 0 {
		return 0.1
	}
	return 2 * sqrtArea(area)
}

// RenderDOTSVG renders DOT source to SVG with the neato engine.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
