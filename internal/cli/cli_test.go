package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

const family = `{
  "nodes": [{"id": "Mary"}, {"id": "Roy"}, {"id": "Frank"}, {"id": "Melanie"}],
  "links": [
    {"source": "Mary", "target": "Roy"},
    {"source": "Mary", "target": "Frank"},
    {"source": "Mary", "target": "Melanie"},
    {"source": "Frank", "target": "Melanie"}
  ]
}`

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.json")
	if err := os.WriteFile(path, []byte(family), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"SVG, json,,dot", []string{"svg", "json", "dot"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		multiple              bool
		want                  string
	}{
		{"", "g.json", "svg", false, "g.svg"},
		{"", "g.json", "json", false, "g.frame.json"},
		{"", "dir/g.json", "graphviz", false, "dir/g.graphviz.svg"},
		{"out.svg", "g.json", "svg", false, "out.svg"},
		{"out.svg", "g.json", "png", true, "out.png"},
		{"out", "g.json", "dot", true, "out.dot"},
	}
	for _, tt := range tests {
		got := outputPath(tt.output, tt.input, tt.format, tt.multiple)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q", tt.output, tt.input, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestFileSafe(t *testing.T) {
	if got := fileSafe("a b/c:d"); got != "a_b_c_d" {
		t.Errorf("fileSafe = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"p", []string{"pdf", "png"}},
		{"svg,d", []string{"svg,dot"}},
		{"svg,s", nil},
	}
	for _, tt := range tests {
		got, _ := completeFormats(nil, nil, tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompleteLayouts(t *testing.T) {
	got, _ := completeLayouts(nil, nil, "strong")
	want := []string{"STRONGTREE", "STRONGFLOW"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("completeLayouts = %v, want %v", got, want)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeGraph(t)
	base := filepath.Join(filepath.Dir(input), "out")

	err := runCLI(t, "render", input, "-f", "svg,dot", "--ticks", "5", "--no-cache", "-o", base, "--highlight", "Mary")
	if err != nil {
		t.Fatal(err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot output missing: %v", err)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeGraph(t)
	if err := runCLI(t, "render", input, "-f", "gif", "--no-cache"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeGraph(t)
	out := filepath.Join(filepath.Dir(input), "positions.json")

	if err := runCLI(t, "layout", input, "--ticks", "5", "--no-cache", "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := graph.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range data.Nodes {
		if !n.Placed() {
			t.Errorf("node %s has no position", n.ID)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forcegraph.toml")
	if err := runCLI(t, "config", "init", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config invalid: %v", err)
	}
	if err := runCLI(t, "config", "init", path); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
	if err := runCLI(t, "config", "init", "--force", path); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestNodeListModel(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Degree: 1},
		{ID: "b", Degree: 3},
		{ID: "c", Degree: 1},
	}
	m := NewNodeListModel(nodes)
	if m.Nodes[0].ID != "b" || m.Nodes[1].ID != "a" {
		t.Errorf("order = %s, %s, %s", m.Nodes[0].ID, m.Nodes[1].ID, m.Nodes[2].ID)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(NodeListModel)
	if got.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", got.Cursor)
	}
	if got.Selected == nil || *got.Selected != "c" {
		t.Errorf("Selected = %v", got.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
	if !strings.Contains(got.View(), "Select Node") {
		t.Error("view missing title")
	}
}
