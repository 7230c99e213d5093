package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// ===== Palette =====

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// ===== Styles =====

var (
	// StyleTitle renders headings such as the node picker title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight marks the selected row in interactive lists.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorFaint)

	styleValue   = lipgloss.NewStyle().Foreground(colorText)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

const (
	markOK   = "✓"
	markFail = "✗"
	markWarn = "!"
	markInfo = "›"
	markFile = "→"
	sep      = " · "
)

// ===== Status lines =====

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleFail.Render(markFail) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleWarn.Render(markWarn) + " " + styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMuted.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// ===== Run output =====

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(markFile) + " " + styleValue.Render(path))
}

// printArtifact prints one written file with its size.
func printArtifact(path string, size int) {
	fmt.Println("  " + StyleDim.Render(markFile) + " " + styleValue.Render(path) +
		StyleDim.Render(" ("+formatBytes(size)+")"))
}

// printSummary prints graph size, simulation length and where the layout
// and artifacts came from.
func printSummary(res *pipeline.Result) {
	s := res.Stats
	parts := []string{
		fmt.Sprintf("%d nodes", s.NodeCount),
		fmt.Sprintf("%d links", s.LinkCount),
	}
	if res.CacheInfo.LayoutHit {
		parts = append(parts, styleOK.Render("layout cached"))
	} else {
		parts = append(parts, fmt.Sprintf("%d ticks in %s", s.Ticks, s.LayoutTime.Round(time.Millisecond)))
	}
	if res.CacheInfo.RenderHit {
		parts = append(parts, styleOK.Render("render cached"))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(sep)))

	if s.Unresolved > 0 {
		printWarning("%d links reference unknown nodes", s.Unresolved)
	}
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
