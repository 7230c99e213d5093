package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/layout"
)

// fourNodes returns Mary, Roy, Frank and Melanie with links 0-1, 0-2,
// 0-3 and 2-3, placed on a grid.
func fourNodes(t *testing.T) *Scene {
	t.Helper()
	ids := []graph.ID{"Mary", "Roy", "Frank", "Melanie"}
	data := &graph.Data{}
	for i, id := range ids {
		n := graph.NewNode(id)
		n.X, n.Y = 100+float64(i)*100, 200
		data.Nodes = append(data.Nodes, n)
	}
	data.Links = []graph.Link{
		{Source: "Mary", Target: "Roy"},
		{Source: "Mary", Target: "Frank"},
		{Source: "Mary", Target: "Melanie"},
		{Source: "Frank", Target: "Melanie"},
	}
	graph.ComputeDegrees(data)
	idx, err := graph.NewIndex(data.Nodes)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return &Scene{Data: data, Index: idx, Weights: graph.NewWeights(data.Links), Transform: 1, Alpha: 1}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestLinkHighlightDegreeOne(t *testing.T) {
	cfg := testConfig()
	cfg.HighlightDegree = 1
	cfg.HighlightOpacity = 0.2
	sc := fourNodes(t)
	sc.Highlight = FocusNode("Mary").Expand(sc.Weights, cfg.HighlightDegree)

	f := NewBuilder(cfg).BuildFrame(sc)
	want := []bool{true, true, true, false}
	for i, lp := range f.Links {
		if lp.Highlighted != want[i] {
			t.Errorf("link %s-%s highlighted = %v, want %v", lp.Source, lp.Target, lp.Highlighted, want[i])
		}
	}
	if f.Links[3].Opacity != 0.2 {
		t.Errorf("unhighlighted link opacity = %v, want 0.2", f.Links[3].Opacity)
	}
	if f.Links[0].Opacity != cfg.Link.Opacity {
		t.Errorf("highlighted link opacity = %v", f.Links[0].Opacity)
	}
}

func TestLinkHighlightDegrees(t *testing.T) {
	tests := []struct {
		degree int
		want   []bool
	}{
		{0, []bool{false, false, false, false}},
		{2, []bool{true, true, true, true}},
	}
	for _, tt := range tests {
		cfg := testConfig()
		cfg.HighlightDegree = tt.degree
		sc := fourNodes(t)
		sc.Highlight = FocusNode("Mary").Expand(sc.Weights, tt.degree)
		f := NewBuilder(cfg).BuildFrame(sc)
		for i, lp := range f.Links {
			if lp.Highlighted != tt.want[i] {
				t.Errorf("degree %d: link %d highlighted = %v", tt.degree, i, lp.Highlighted)
			}
		}
	}
}

func TestLinkHighlightedByLink(t *testing.T) {
	cfg := testConfig()
	cfg.Link.HighlightColor = config.Use("#ff0000")
	sc := fourNodes(t)
	sc.Highlight = FocusLink("Frank", "Melanie")
	f := NewBuilder(cfg).BuildFrame(sc)

	if !f.Links[3].Highlighted || f.Links[3].Stroke != "#ff0000" {
		t.Errorf("focused link = %+v", f.Links[3])
	}
	if f.Links[0].Highlighted || f.Links[0].Stroke != cfg.Link.Color {
		t.Errorf("other link = %+v", f.Links[0])
	}
	frank, _ := f.Node("Frank")
	roy, _ := f.Node("Roy")
	if !frank.Highlighted || roy.Highlighted {
		t.Errorf("node highlight: frank=%v roy=%v", frank.Highlighted, roy.Highlighted)
	}
	if roy.Opacity != cfg.HighlightOpacity {
		t.Errorf("roy opacity = %v", roy.Opacity)
	}
}

func TestLinkStroke(t *testing.T) {
	cfg := testConfig()
	sc := fourNodes(t)
	b := NewBuilder(cfg)

	l := graph.Link{Source: "Mary", Target: "Roy", Color: "blue"}
	if got := b.BuildLinkProps(sc, &l).Stroke; got != "blue" {
		t.Errorf("stroke = %q, want blue", got)
	}
	l.Selected = true
	if got := b.BuildLinkProps(sc, &l).Stroke; got != cfg.Link.SelectedStrokeColor {
		t.Errorf("selected stroke = %q", got)
	}

	// highlight with SAME falls back to the configured link color
	sc.Highlight = FocusLink("Mary", "Roy")
	if got := b.BuildLinkProps(sc, &l).Stroke; got != cfg.Link.Color {
		t.Errorf("highlighted stroke = %q, want %q", got, cfg.Link.Color)
	}
}

func TestLinkStrokeWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Link.StrokeWidth = 2
	sc := fourNodes(t)
	sc.Transform = 2
	l := graph.Link{Source: "Mary", Target: "Roy"}

	if got := NewBuilder(cfg).BuildLinkProps(sc, &l).StrokeWidth; got != 1 {
		t.Errorf("strokeWidth = %v, want 1", got)
	}

	cfg.Link.SemanticStrokeWidth = true
	sc.Weights = graph.Weights{"Roy": {"Mary": 5}}
	if got := NewBuilder(cfg).BuildLinkProps(sc, &l).StrokeWidth; got != 1.5 {
		t.Errorf("semantic strokeWidth = %v, want 1.5", got)
	}
}

func TestLinkMarkerAndLabel(t *testing.T) {
	cfg := testConfig()
	sc := fourNodes(t)
	l := graph.Link{Source: "Mary", Target: "Roy", Extra: map[string]any{"label": "knows"}}

	lp := NewBuilder(cfg).BuildLinkProps(sc, &l)
	if lp.MarkerID != "" || lp.Label != "" || lp.FontSize != 0 {
		t.Errorf("undirected unlabeled link = %+v", lp)
	}

	cfg.Directed = true
	cfg.Link.RenderLabel = true
	sc.Transform = 4
	lp = NewBuilder(cfg).BuildLinkProps(sc, &l)
	if lp.MarkerID != "marker-large-"+cfg.Link.Color {
		t.Errorf("markerId = %q", lp.MarkerID)
	}
	if lp.Label != "knows" || lp.FontSize != cfg.Link.FontSize/4 || lp.FontWeight != "normal" {
		t.Errorf("label fields = %q %v %q", lp.Label, lp.FontSize, lp.FontWeight)
	}
}

func TestLinkClassName(t *testing.T) {
	cfg := testConfig()
	sc := fourNodes(t)
	b := NewBuilder(cfg)

	l := graph.Link{Source: "Mary", Target: "Roy"}
	if got := b.BuildLinkProps(sc, &l).ClassName; got != "link" {
		t.Errorf("className = %q", got)
	}
	l.ClassName = "dashed"
	if got := b.BuildLinkProps(sc, &l).ClassName; got != "link dashed" {
		t.Errorf("className = %q", got)
	}
}

func TestLinkUnresolvedEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.AutomaticLayoutOn = true
	sc := fourNodes(t)
	l := graph.Link{Source: "Mary", Target: "ghost"}
	lp := NewBuilder(cfg).BuildLinkProps(sc, &l)
	if !strings.HasPrefix(lp.D, "M100,200") || !strings.HasSuffix(lp.D, " 0,0") {
		t.Errorf("d = %q", lp.D)
	}
}

func TestLinkRunsLayout(t *testing.T) {
	cfg := testConfig()
	cfg.AutomaticLayoutOn = true
	cfg.LayoutMode = config.Layout(config.LayoutWeakTree)
	sc := fourNodes(t)
	sc.Alpha = 0.5

	l := sc.Data.Links[0]
	lp := NewBuilder(cfg).BuildLinkProps(sc, &l)
	if sc.Data.Nodes[0].Y != 199.5 || sc.Data.Nodes[1].Y != 200.5 {
		t.Errorf("y = %v, %v", sc.Data.Nodes[0].Y, sc.Data.Nodes[1].Y)
	}
	if lp.D != "M100,199.5A0,0 0 0,1 200,200.5" {
		t.Errorf("d = %q", lp.D)
	}

	calls := 0
	custom := NewBuilder(cfg, WithLayout(layout.Custom(func(layout.Step) { calls++ })))
	custom.BuildFrame(sc)
	if calls != len(sc.Data.Links) {
		t.Errorf("custom strategy calls = %d", calls)
	}
}

func TestNodeProps(t *testing.T) {
	cfg := testConfig()
	n := graph.NewNode("Roy")
	n.X, n.Y = 10, 20
	n.Color = "blue"

	p := BuildNodeProps(&n, cfg, Highlight{}, 2, NodeCallbacks{})
	if p.Fill != "blue" || p.Stroke != "none" || p.Label != "Roy" || p.Type != "circle" {
		t.Errorf("props = %+v", p)
	}
	if p.CX != 10 || p.CY != 20 || p.ClassName != "node" {
		t.Errorf("position/class = %v %v %q", p.CX, p.CY, p.ClassName)
	}
	if p.FontSize != 4 || p.StrokeWidth != 0.75 {
		t.Errorf("fontSize=%v strokeWidth=%v", p.FontSize, p.StrokeWidth)
	}
	if p.DX != 4+2+1.5 {
		t.Errorf("dx = %v", p.DX)
	}
	if p.Size != 200 || p.Width != 0 {
		t.Errorf("size=%v width=%v", p.Size, p.Width)
	}
}

func TestNodePropsHighlight(t *testing.T) {
	cfg := testConfig()
	cfg.Node.HighlightColor = config.Use("red")
	cfg.Node.HighlightStrokeWidth = config.Use(3.0)
	cfg.Node.HighlightFontSize = 12
	cfg.Node.HighlightFontWeight = config.Use("bold")
	n := graph.NewNode("Roy")
	n.Selected = true

	plain := BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{})
	if plain.Stroke != cfg.Node.SelectedStrokeColor {
		t.Errorf("selected stroke = %q", plain.Stroke)
	}

	p := BuildNodeProps(&n, cfg, FocusNode("Roy").Expand(nil, 0), 1, NodeCallbacks{})
	if p.Fill != "red" || p.StrokeWidth != 3 || p.FontSize != 12 || p.FontWeight != "bold" {
		t.Errorf("highlighted props = %+v", p)
	}
	// SAME keeps the selected stroke
	if p.Stroke != cfg.Node.SelectedStrokeColor {
		t.Errorf("highlighted stroke = %q", p.Stroke)
	}
}

func TestNodeBoxClearsSize(t *testing.T) {
	cfg := testConfig()
	n := graph.NewNode("box")
	n.Width, n.Height = 40, 30
	p := BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{})
	if p.Size != 0 || p.Width != 40 || p.Height != 30 {
		t.Errorf("size=%v width=%v height=%v", p.Size, p.Width, p.Height)
	}
	if p.DX != cfg.Node.FontSize+1.5 {
		t.Errorf("dx = %v", p.DX)
	}
}

func TestNodeLabel(t *testing.T) {
	cfg := testConfig()
	n := graph.NewNode("7")
	n.Extra = map[string]any{"name": "Seven"}

	cfg.Node.LabelProperty = "name"
	if got := BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{}).Label; got != "Seven" {
		t.Errorf("label = %q", got)
	}
	cfg.Node.LabelProperty = "missing"
	if got := BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{}).Label; got != "7" {
		t.Errorf("fallback label = %q", got)
	}
	cfg.Node.LabelFunc = func(n *graph.Node) string { return "#" + string(n.ID) }
	if got := BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{}).Label; got != "#7" {
		t.Errorf("func label = %q", got)
	}
}

func TestNodeOpacity(t *testing.T) {
	cfg := testConfig()
	cfg.HighlightOpacity = 0.1
	n := graph.NewNode("a")
	n.Opacity = 0.7

	if got := NodeOpacity(&n, cfg, Highlight{}); got != 0.7 {
		t.Errorf("idle = %v", got)
	}
	if got := NodeOpacity(&n, cfg, FocusNode("b").Expand(nil, 1)); got != 0.1 {
		t.Errorf("faded = %v", got)
	}
	if got := NodeOpacity(&n, cfg, FocusLink("a", "b")); got != cfg.Node.Opacity {
		t.Errorf("link endpoint = %v", got)
	}
	// an incomplete link focus does not fade nodes
	if got := NodeOpacity(&n, cfg, Highlight{Link: &graph.LinkRef{Source: "x"}}); got != 0.7 {
		t.Errorf("partial link = %v", got)
	}
}

func TestNodePropsJSONKeepsExtra(t *testing.T) {
	cfg := testConfig()
	n := graph.NewNode("a")
	n.Extra = map[string]any{"team": "core", "fill": "ignored"}
	data, err := json.Marshal(BuildNodeProps(&n, cfg, Highlight{}, 1, NodeCallbacks{}))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["team"] != "core" {
		t.Errorf("team = %v", got["team"])
	}
	if got["fill"] != cfg.Node.Color {
		t.Errorf("fill = %v, computed field should win", got["fill"])
	}
}

func TestBuildFrameMarkers(t *testing.T) {
	cfg := testConfig()
	cfg.Directed = true
	sc := fourNodes(t)
	sc.Data.Links[3].Color = "red"
	b := NewBuilder(cfg)
	f := b.BuildFrame(sc)
	if len(f.Markers) != 2 {
		t.Fatalf("markers = %+v", f.Markers)
	}
	if f.Markers[1].Color != "red" || f.Markers[1].Size != MarkerSmall {
		t.Errorf("marker = %+v", f.Markers[1])
	}
	hits, misses := b.Markers().Stats()
	if hits != 2 || misses != 2 {
		t.Errorf("hits=%d misses=%d", hits, misses)
	}

	data, err := MarshalFrame(f)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Nodes) != 4 || back.Links[3].MarkerID != "marker-small-red" {
		t.Errorf("round trip lost data: %+v", back.Links[3])
	}
}

func TestBuilderCallbacksPassThrough(t *testing.T) {
	var clicked []string
	b := NewBuilder(testConfig(),
		WithNodeCallbacks(NodeCallbacks{OnClickNode: func(id graph.ID) { clicked = append(clicked, "node:"+string(id)) }}),
		WithLinkCallbacks(LinkCallbacks{OnClickLink: func(src, dst graph.ID) { clicked = append(clicked, "link:"+string(src)+"-"+string(dst)) }}),
	)
	f := b.BuildFrame(fourNodes(t))

	f.Nodes[1].Callbacks.OnClickNode(f.Nodes[1].ID)
	f.Links[3].Callbacks.OnClickLink(f.Links[3].Source, f.Links[3].Target)

	want := "node:Roy,link:Frank-Melanie"
	if got := strings.Join(clicked, ","); got != want {
		t.Errorf("callbacks = %q, want %q", got, want)
	}
	if f.Nodes[0].Callbacks.OnMouseOut != nil {
		t.Error("unset callback should stay nil")
	}
}

func TestLinkHighlightBroadDegreesAgree(t *testing.T) {
	for _, degree := range []int{0, 2} {
		cfg := testConfig()
		cfg.HighlightDegree = degree
		sc := fourNodes(t)
		sc.Data.Nodes[2].Highlighted = true
		sc.Data.Nodes[3].Highlighted = true
		sc.Highlight = FocusNode("Mary").Expand(sc.Weights, 0)

		f := NewBuilder(cfg).BuildFrame(sc)
		if !f.Links[3].Highlighted {
			t.Errorf("degree %d: Frank-Melanie should be highlighted when both ends are flagged", degree)
		}
		if f.Links[0].Highlighted {
			t.Errorf("degree %d: Mary-Roy highlighted without Roy flagged", degree)
		}
	}
}
