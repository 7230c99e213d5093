package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/render"
)

const interactionCSS = `
    .node { transition: opacity 0.2s ease; }
    .link { transition: opacity 0.2s ease; }
    .node text { pointer-events: none; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background string
	labels     bool
}

// WithTitle adds a <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithBackground fills the viewport with a color.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithoutLabels suppresses node and link labels regardless of the frame.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG writes f as a standalone SVG document. Links are drawn below
// nodes.
func RenderSVG(f render.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		fmtNum(f.Width), fmtNum(f.Height), f.Width, f.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	renderMarkers(&buf, f.Markers)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", color(r.background))
	}

	fmt.Fprintf(&buf, `  <g id="graph-container-zoomable" transform="scale(%s)">`+"\n", fmtNum(f.Transform))
	for i := range f.Links {
		renderLink(&buf, &f.Links[i], r.labels)
	}
	for i := range f.Nodes {
		renderNode(&buf, &f.Nodes[i], r.labels)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderMarkers(buf *bytes.Buffer, markers []render.Marker) {
	if len(markers) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, m := range markers {
		s := m.Size.Scale()
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 -5 10 10" refX="%s" refY="0" markerWidth="%s" markerHeight="%s" orient="auto" fill="%s">`,
			markerRef(m.ID), fmtNum(10+12*s), fmtNum(6*s), fmtNum(6*s), color(m.Color))
		buf.WriteString(`<path d="M0,-5L10,0L0,5"/></marker>` + "\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderLink(buf *bytes.Buffer, l *render.LinkProps, labels bool) {
	fmt.Fprintf(buf, `    <path class="%s" d="%s" fill="none" stroke="%s" stroke-width="%s" opacity="%s"`,
		html.EscapeString(l.ClassName), l.D, color(l.Stroke), fmtNum(l.StrokeWidth), fmtNum(l.Opacity))
	if l.MarkerID != "" {
		fmt.Fprintf(buf, ` marker-end="url(#%s)"`, markerRef(l.MarkerID))
	}
	fmt.Fprintf(buf, ` data-source="%s" data-target="%s"/>`+"\n",
		html.EscapeString(string(l.Source)), html.EscapeString(string(l.Target)))

	if !labels || l.Label == "" {
		return
	}
	if x, y, ok := pathMidpoint(l.D); ok {
		fmt.Fprintf(buf, `    <text class="link-label" x="%s" y="%s" text-anchor="middle" fill="%s" font-size="%s" font-weight="%s">%s</text>`+"\n",
			fmtNum(x), fmtNum(y), color(l.FontColor), fmtNum(l.FontSize), html.EscapeString(l.FontWeight), html.EscapeString(l.Label))
	}
}

func renderNode(buf *bytes.Buffer, n *render.NodeProps, labels bool) {
	fmt.Fprintf(buf, `    <g class="%s" id="%s" transform="translate(%s,%s)" opacity="%s" cursor="%s">`+"\n",
		html.EscapeString(n.ClassName), html.EscapeString(string(n.ID)), fmtNum(n.CX), fmtNum(n.CY), fmtNum(n.Opacity), html.EscapeString(n.Cursor))

	switch {
	case n.SVG != "":
		w, h := n.Size/10, n.Size/10
		if n.Width > 0 && n.Height > 0 {
			w, h = n.Width/10, n.Height/10
		}
		fmt.Fprintf(buf, `      <image href="%s" x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			html.EscapeString(n.SVG), fmtNum(-w/2), fmtNum(-h/2), fmtNum(w), fmtNum(h))
	case n.Width > 0 && n.Height > 0:
		w, h := n.Width/10, n.Height/10
		fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			fmtNum(-w/2), fmtNum(-h/2), fmtNum(w), fmtNum(h), color(n.Fill), color(n.Stroke), fmtNum(n.StrokeWidth))
	default:
		fmt.Fprintf(buf, `      <path d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			SymbolPath(n.Type, n.Size), color(n.Fill), color(n.Stroke), fmtNum(n.StrokeWidth))
	}

	if labels && n.RenderLabel && n.Label != "" {
		fmt.Fprintf(buf, `      <text dx="%s" dy=".35em" fill="%s" font-size="%s" font-weight="%s">%s</text>`+"\n",
			fmtNum(n.DX), color(n.FontColor), fmtNum(n.FontSize), html.EscapeString(n.FontWeight), html.EscapeString(n.Label))
	}
	buf.WriteString("    </g>\n")
}

// markerRef turns a marker id into a valid fragment identifier. The same
// mapping is used for the def and every reference.
func markerRef(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// color normalizes hex colors and escapes the value for an attribute.
func color(c string) string {
	if c == "" {
		return "none"
	}
	return html.EscapeString(config.NormalizeColor(c))
}

// pathMidpoint returns the midpoint of the straight segment between the
// endpoints of a link path "M{sx},{sy}A... {tx},{ty}".
func pathMidpoint(d string) (x, y float64, ok bool) {
	var sx, sy, tx, ty float64
	head, _, found := strings.Cut(d, "A")
	if !found {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(head, "M%g,%g", &sx, &sy); err != nil {
		return 0, 0, false
	}
	i := strings.LastIndexByte(d, ' ')
	if i < 0 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(d[i+1:], "%g,%g", &tx, &ty); err != nil {
		return 0, 0, false
	}
	return (sx + tx) / 2, (sy + ty) / 2, true
}
