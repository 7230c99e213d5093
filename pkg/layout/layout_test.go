package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 800, 400
	cfg.D3.MaxDegrees = 4
	return &cfg
}

func TestClamp(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name      string
		pos       float64
		axis      Axis
		transform float64
		want      float64
	}{
		{"inside", 300, AxisX, 1, 300},
		{"below", -10, AxisX, 1, 50},
		{"above", 1000, AxisX, 1, 750},
		{"y above", 1000, AxisY, 1, 350},
		{"zoomed", 1000, AxisX, 2, 375},
		{"zoomed below", 0, AxisY, 2, 25},
		{"nan", math.NaN(), AxisX, 1, 50},
		{"inf", math.Inf(1), AxisY, 1, 50},
		{"bad transform", 1000, AxisX, 0, 750},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.pos, tt.axis, cfg, tt.transform); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestClampStaysInBounds(t *testing.T) {
	cfg := testConfig()
	for _, tr := range []float64{0.5, 1, 3, 8} {
		for _, axis := range []Axis{AxisX, AxisY} {
			lo, hi := Bounds(axis, cfg, tr)
			for p := -2000.0; p <= 2000; p += 37 {
				got := Clamp(p, axis, cfg, tr)
				if got < lo || got > hi {
					t.Fatalf("Clamp(%v, %v, t=%v) = %v outside [%v, %v]", p, axis, tr, got, lo, hi)
				}
			}
		}
	}
}

func TestPositionForDegree(t *testing.T) {
	cfg := testConfig()
	// span along x is (800-50)/1 = 750, step 750/4
	tests := []struct {
		degree int
		want   float64
	}{
		{0, 0},
		{1, 0},
		{2, 187.5},
		{3, 375},
		{4, 562.5},
		{9, 562.5},
		{graph.UnknownDegree, 562.5},
	}
	for _, tt := range tests {
		if got := PositionForDegree(tt.degree, AxisX, cfg, 1); got != tt.want {
			t.Errorf("PositionForDegree(%d) = %v, want %v", tt.degree, got, tt.want)
		}
	}
}

func TestPositionForDegreeMonotonic(t *testing.T) {
	cfg := testConfig()
	prev := -1.0
	for d := 0; d <= 10; d++ {
		got := PositionForDegree(d, AxisY, cfg, 1.5)
		if got < prev {
			t.Fatalf("degree %d: %v < previous %v", d, got, prev)
		}
		prev = got
	}
}

func newStep(t *testing.T, nodes []graph.Node, src, tgt graph.ID, alpha float64) Step {
	t.Helper()
	idx, err := graph.NewIndex(nodes)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return Step{
		Nodes:     nodes,
		Index:     idx,
		Source:    src,
		Target:    tgt,
		Config:    testConfig(),
		Transform: 1,
		Alpha:     alpha,
	}
}

func placed(id graph.ID, x, y float64, degree int) graph.Node {
	n := graph.NewNode(id)
	n.X, n.Y, n.Degree = x, y, degree
	return n
}

func TestDefaultIdempotent(t *testing.T) {
	nodes := []graph.Node{placed("a", -30, 900, 1), placed("b", 200, 100, 1)}
	s := newStep(t, nodes, "a", "b", 0.5)
	apply := Named(Default).Strategy()
	apply(s)
	first := append([]graph.Node(nil), nodes...)
	apply(s)
	for i := range nodes {
		if nodes[i].X != first[i].X || nodes[i].Y != first[i].Y {
			t.Errorf("node %s moved on second pass", nodes[i].ID)
		}
	}
	if nodes[0].X != 50 || nodes[0].Y != 350 {
		t.Errorf("a = (%v, %v), want (50, 350)", nodes[0].X, nodes[0].Y)
	}
}

func TestWeakTree(t *testing.T) {
	nodes := []graph.Node{placed("a", 200, 200, 1), placed("b", 300, 200, 1)}
	s := newStep(t, nodes, "a", "b", 0.25)
	Named(WeakTree).Strategy()(s)
	if nodes[0].Y != 199.75 || nodes[1].Y != 200.25 {
		t.Errorf("y = %v, %v; want 199.75, 200.25", nodes[0].Y, nodes[1].Y)
	}
	if nodes[0].X != 200 || nodes[1].X != 300 {
		t.Error("x changed")
	}
}

func TestWeakFlow(t *testing.T) {
	nodes := []graph.Node{placed("a", 200, 200, 1), placed("b", 300, 200, 1)}
	s := newStep(t, nodes, "a", "b", 1)
	Named(WeakFlow).Strategy()(s)
	if nodes[0].X != 199 || nodes[1].X != 301 {
		t.Errorf("x = %v, %v; want 199, 301", nodes[0].X, nodes[1].X)
	}
}

func TestStrongTree(t *testing.T) {
	nodes := []graph.Node{placed("a", 200, 60, 3), placed("b", 300, 60, 4)}
	s := newStep(t, nodes, "a", "b", 1)
	Named(StrongTree).Strategy()(s)
	// y span (400-50)=350, step 87.5
	if nodes[0].Y != 175-1 || nodes[1].Y != 262.5+1 {
		t.Errorf("y = %v, %v; want 174, 263.5", nodes[0].Y, nodes[1].Y)
	}
}

func TestStrongTreeDragged(t *testing.T) {
	nodes := []graph.Node{placed("a", 200, 60, 3), placed("b", 300, 500, 4)}
	s := newStep(t, nodes, "a", "b", 1)
	s.Dragged = true
	Named(StrongTree).Strategy()(s)
	if nodes[0].Y != 60 || nodes[1].Y != 350 {
		t.Errorf("y = %v, %v; want 60, 350", nodes[0].Y, nodes[1].Y)
	}
}

func TestStrongFlowClampsLowDegree(t *testing.T) {
	nodes := []graph.Node{placed("a", 400, 100, 1), placed("b", 400, 100, 1)}
	s := newStep(t, nodes, "a", "b", 0.5)
	Named(StrongFlow).Strategy()(s)
	if nodes[0].X != 50 || nodes[1].X != 50 {
		t.Errorf("x = %v, %v; want both clamped to 50", nodes[0].X, nodes[1].X)
	}
}

func TestUnresolvedEndpointIsNoop(t *testing.T) {
	nodes := []graph.Node{placed("a", -100, -100, 1)}
	s := newStep(t, nodes, "a", "ghost", 1)
	for _, k := range []Kind{Default, WeakTree, StrongTree, WeakFlow, StrongFlow} {
		Named(k).Strategy()(s)
	}
	if nodes[0].X != -100 || nodes[0].Y != -100 {
		t.Errorf("a moved to (%v, %v)", nodes[0].X, nodes[0].Y)
	}
}

func TestModeFromConfig(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "DEFAULT"},
		{"weaktree", "WEAKTREE"},
		{"STRONGFLOW", "STRONGFLOW"},
		{"SIDEWAYS", "DEFAULT"},
	}
	for _, tt := range tests {
		if got := ModeFromConfig(config.Layout(tt.name)).String(); got != tt.want {
			t.Errorf("ModeFromConfig(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCustomMode(t *testing.T) {
	calls := 0
	m := Custom(func(Step) { calls++ })
	if !m.IsCustom() || m.String() != "CUSTOM" {
		t.Fatalf("mode = %s", m)
	}
	m.Strategy()(Step{})
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
	if Custom(nil).IsCustom() {
		t.Error("Custom(nil) should fall back to DEFAULT")
	}
}

func TestCollisionRadius(t *testing.T) {
	defaults := config.Default().Node
	defaults.Size = 0
	c := NewCollisionRadius(defaults)

	box := graph.NewNode("box")
	box.Width, box.Height = 40, 30
	sized := graph.NewNode("sized")
	sized.Size = 200
	bare := graph.NewNode("bare")

	tests := []struct {
		name string
		node *graph.Node
		want float64
	}{
		{"box", &box, 4.0},
		{"sized", &sized, 11.5},
		{"fallback", &bare, RadiusCollide + CollidePadding},
	}
	for _, tt := range tests {
		if got := c.Radius(tt.node); got != tt.want {
			t.Errorf("%s: Radius = %v, want %v", tt.name, got, tt.want)
		}
	}

	defaults.Width, defaults.Height = 60, 80
	c.Configure(defaults)
	if got := c.Radius(&bare); got != 6.5 {
		t.Errorf("after Configure: Radius = %v, want 6.5", got)
	}
	if c.Generation() != 2 {
		t.Errorf("Generation = %d, want 2", c.Generation())
	}

	defaults.Width, defaults.Height = 0, 0
	defaults.Size = 100
	c.Configure(defaults)
	if got := c.Radius(&bare); got != 6.5 {
		t.Errorf("default size: Radius = %v, want 6.5", got)
	}
}
