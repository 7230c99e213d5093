package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  graphFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Simulate a graph and write the final node positions",
		Long: `Simulate a graph and write it back with the final x/y of every node.

The output is a graph file in the input format, so it can be rendered
again; nodes that already have positions start from them.
Use -o - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, args[0])
			opts.Formats = []string{pipeline.FormatJSON}
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	result, err := c.execute(ctx, opts, noCache, "Simulating")
	if err != nil {
		return err
	}

	if output == "-" {
		return graph.WriteJSON(result.Data, os.Stdout)
	}
	if output == "" {
		output = strings.TrimSuffix(opts.GraphPath, filepath.Ext(opts.GraphPath)) + ".layout.json"
	}
	if err := graph.WriteFile(result.Data, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printSummary(result)
	printNextStep("Render", appName+" render "+output)
	return nil
}
