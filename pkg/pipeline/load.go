package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/graph"
)

// Load reads the graph and configuration named by opts, applies the
// option overrides and validates the result.
func Load(ctx context.Context, opts Options) (graph.Data, config.Config, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Data{}, config.Config{}, err
	}

	data, err := LoadGraph(opts)
	if err != nil {
		return graph.Data{}, config.Config{}, err
	}
	cfg, err := LoadConfig(opts)
	if err != nil {
		return graph.Data{}, config.Config{}, err
	}
	if err := ctx.Err(); err != nil {
		return graph.Data{}, config.Config{}, err
	}
	return data, cfg, nil
}

// LoadGraph reads the graph from the path or inline JSON in opts.
func LoadGraph(opts Options) (graph.Data, error) {
	if opts.GraphPath != "" {
		return graph.ReadFile(opts.GraphPath)
	}
	return graph.ReadJSON(bytes.NewReader(opts.Graph))
}

// LoadConfig resolves the configuration: a runtime Config, a file, inline
// JSON, or the defaults, in that order. Overrides from opts are applied
// before validation.
func LoadConfig(opts Options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case opts.Config != nil:
		cfg = *opts.Config
	case opts.ConfigPath != "":
		cfg, err = config.Load(opts.ConfigPath)
	case len(opts.ConfigJSON) > 0:
		cfg, err = config.DecodeJSON(opts.ConfigJSON)
	default:
		cfg = config.Default()
	}
	if err != nil {
		return config.Config{}, err
	}

	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Width > 0 {
		cfg.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Height = opts.Height
	}
	if opts.LayoutName != "" {
		cfg.LayoutMode = config.Layout(opts.LayoutName)
	}
	if opts.Directed != nil {
		cfg.Directed = *opts.Directed
	}
	if opts.Automatic != nil {
		cfg.AutomaticLayoutOn = *opts.Automatic
	}
}
