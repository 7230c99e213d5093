package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags     graphFlags
		formats   string
		output    string
		highlight string
		title     string
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Simulate a graph and render it",
		Long: `Simulate a graph and render the final frame.

Formats: svg (default), json (frame descriptors), dot (Graphviz source with
pinned positions), graphviz (SVG drawn by Graphviz), png and pdf (require
rsvg-convert).

With one format, -o names the output file. With several, -o is a base path
and the format is appended as the extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, args[0])
			opts.Formats = parseFormats(formats)
			opts.Highlight = highlight
			opts.Title = title
			opts.Scale = scale
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), json, dot, graphviz, png, pdf (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&highlight, "highlight", "", "id of the node to highlight")
	cmd.Flags().StringVar(&title, "title", "", "SVG title")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG pixel scale")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}

	result, err := c.execute(ctx, opts, noCache, "Simulating")
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, opts.GraphPath)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.GraphPath)
	for i, p := range paths {
		printArtifact(p, len(result.Artifacts[opts.Formats[i]]))
	}
	printSummary(result)
	return nil
}

// execute runs the pipeline behind a spinner that tracks ticks.
func (c *CLI) execute(ctx context.Context, opts pipeline.Options, noCache bool, verb string) (*pipeline.Result, error) {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, verb+" "+opts.GraphPath+"...")
	defer trackTicks(spinner, verb)()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(verb + " failed")
		return nil, err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("%s %s: %d ticks", verb, opts.GraphPath, result.Stats.Ticks))
	return result, nil
}

// writeArtifacts writes each format and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) > 1)
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for one format. A single-format output is
// used verbatim; otherwise the format extension is appended to the base.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + extension(format)
}

// basePath strips a known format extension from output, or derives the
// base from input when output is empty. JSON frames get a ".frame.json"
// extension so they never overwrite the input graph.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func extension(format string) string {
	switch format {
	case pipeline.FormatGraphviz:
		return "graphviz.svg"
	case pipeline.FormatJSON:
		return "frame.json"
	}
	return format
}
