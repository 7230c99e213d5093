package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/layout"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or show the graph configuration",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand writes the default configuration as TOML.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to " + configFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := config.WriteTOML(config.Default(), f); err != nil {
				return err
			}

			printSuccess("Wrote default configuration")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	var (
		path string
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration: the defaults, overlaid with the
config file (-c, or ./` + configFile + ` if present), validated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = defaultConfigPath()
			}
			cfg := config.Default()
			if path != "" {
				var err error
				if cfg, err = config.Load(path); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if raw {
				return config.WriteTOML(cfg, cmd.OutOrStdout())
			}
			printConfig(cfg, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file")
	cmd.Flags().BoolVar(&raw, "toml", false, "print as TOML")
	return cmd
}

func printConfig(cfg config.Config, path string) {
	source := "defaults"
	if path != "" {
		source = path
	}
	fmt.Println(StyleTitle.Render("Configuration") + " " + StyleDim.Render("("+source+")"))
	printKeyValue("viewport", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height))
	printKeyValue("zoom", fmt.Sprintf("%g..%g", cfg.MinZoom, cfg.MaxZoom))
	printKeyValue("layout", layout.ModeFromConfig(cfg.LayoutMode).String())
	printKeyValue("automatic", strconv.FormatBool(cfg.AutomaticLayoutOn))
	printKeyValue("directed", strconv.FormatBool(cfg.Directed))
	printKeyValue("highlight", fmt.Sprintf("degree %d, opacity %g", cfg.HighlightDegree, cfg.HighlightOpacity))
	printKeyValue("max degrees", strconv.Itoa(cfg.D3.MaxDegrees))
	printKeyValue("gravity", fmt.Sprintf("%g", cfg.D3.Gravity))
	printKeyValue("link length", fmt.Sprintf("%g", cfg.D3.LinkLength))
	printKeyValue("node", fmt.Sprintf("%s %s, size %g", cfg.Node.Color, cfg.Node.SymbolType, cfg.Node.Size))
	printKeyValue("link", fmt.Sprintf("%s %s, width %g", cfg.Link.Color, cfg.Link.Type, cfg.Link.StrokeWidth))
}
