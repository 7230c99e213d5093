package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// List styles
var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorFaint)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags  graphFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Pick a node interactively and render it highlighted",
		Long: `List the nodes of a graph by degree, pick one, and render an SVG with
that node and its neighborhood (config highlight_degree) highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, args[0])
			return c.runInspect(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<node>.svg)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	data, err := pipeline.LoadGraph(opts)
	if err != nil {
		return err
	}
	if len(data.Nodes) == 0 {
		printWarning("Graph has no nodes")
		return nil
	}

	final, err := tea.NewProgram(NewNodeListModel(data.Nodes), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("node picker: %w", err)
	}
	m, ok := final.(NodeListModel)
	if !ok || m.Selected == nil {
		printInfo("No node selected")
		return nil
	}

	opts.Highlight = string(*m.Selected)
	opts.Formats = []string{pipeline.FormatSVG}
	opts.Title = opts.Highlight
	if output == "" {
		output = basePath("", opts.GraphPath) + "." + fileSafe(opts.Highlight) + ".svg"
	}
	return c.runRender(ctx, opts, output, noCache)
}

// fileSafe replaces characters that are awkward in file names.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

// =============================================================================
// NodeListModel - Interactive node selection
// =============================================================================

// NodeListModel is the bubbletea model for picking a node.
type NodeListModel struct {
	Nodes    []graph.Node
	Cursor   int
	Selected *graph.ID
	Height   int
	Offset   int
}

// NewNodeListModel lists nodes by descending degree, then id.
func NewNodeListModel(nodes []graph.Node) NodeListModel {
	sorted := append([]graph.Node(nil), nodes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Degree != sorted[j].Degree {
			return sorted[i].Degree > sorted[j].Degree
		}
		return sorted[i].ID < sorted[j].ID
	})
	return NodeListModel{Nodes: sorted, Height: 15}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			id := m.Nodes[m.Cursor].ID
			m.Selected = &id
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ highlight  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label, _ := n.Prop("name")
		rows = append(rows, []string{cursor, string(n.ID), strconv.Itoa(n.Degree), label})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Node", "Degree", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return StyleHighlight
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorMuted)
			}
			return lipgloss.NewStyle().Foreground(colorText)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}
