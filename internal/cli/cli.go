// Package cli implements the forcegraph command-line interface.
//
// # Commands
//
//   - render: simulate a graph and write SVG, JSON, DOT, PNG or PDF
//   - layout: simulate a graph and write the final node positions
//   - inspect: pick a node interactively and render it highlighted
//   - config: write or show the configuration
//   - cache: manage the local artifact cache
//   - serve: run the HTTP API
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/buildinfo"
	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "forcegraph"

	// configFile is the config file looked up in the working directory.
	configFile = "forcegraph.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "forcegraph lays out node-link graphs with a force simulation",
		Long:         `forcegraph runs a force-directed simulation over a JSON node-link graph, constrains node positions with a layout mode, and renders the result as SVG, JSON, DOT, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/forcegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// defaultConfigPath returns ./forcegraph.toml when it exists.
func defaultConfigPath() string {
	if _, err := os.Stat(configFile); err == nil {
		return configFile
	}
	return ""
}

// =============================================================================
// Options Helpers
// =============================================================================

// graphFlags are the simulation flags shared by render, layout and inspect.
type graphFlags struct {
	config    string
	layout    string
	width     float64
	height    float64
	ticks     int
	seed      uint64
	zoom      float64
	directed  bool
	automatic bool
	noCache   bool
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "config file (.toml or .json; default ./"+configFile+" if present)")
	cmd.Flags().StringVarP(&f.layout, "layout", "l", "", "layout mode: DEFAULT, WEAKTREE, STRONGTREE, WEAKFLOW, STRONGFLOW")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width (overrides config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height (overrides config)")
	cmd.Flags().IntVar(&f.ticks, "ticks", pipeline.DefaultTicks, "maximum simulation ticks")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed for the simulation")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 1, "zoom transform applied to bounds and markers")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "draw arrow markers (overrides config)")
	cmd.Flags().BoolVar(&f.automatic, "auto-layout", false, "apply the layout mode on every tick (overrides config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("layout", completeLayouts)
	_ = cmd.MarkFlagFilename("config", "toml", "json")
}

// options builds pipeline options for input. Boolean overrides only apply
// when the flag was set explicitly.
func (f *graphFlags) options(cmd *cobra.Command, input string) pipeline.Options {
	opts := pipeline.Options{
		GraphPath:  input,
		ConfigPath: f.config,
		LayoutName: f.layout,
		Width:      f.width,
		Height:     f.height,
		Ticks:      f.ticks,
		Seed:       f.seed,
		Transform:  f.zoom,
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath()
	}
	if cmd.Flags().Changed("directed") {
		opts.Directed = &f.directed
	}
	if cmd.Flags().Changed("auto-layout") {
		opts.Automatic = &f.automatic
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
