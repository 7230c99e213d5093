package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/internal/server"
	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		prefix   string
		noCache  bool
		maxTicks int
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Results are cached in redis when --redis is set, otherwise in the local
cache directory. Keys are prefixed with --cache-prefix so several
deployments can share one redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.serverCache(ctx, redisURL, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, prefix), c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithMaxTicks(maxTicks),
				server.WithRequestTimeout(timeout),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the shared cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&prefix, "cache-prefix", appName+":", "cache key prefix")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", server.DefaultMaxTicks, "maximum ticks per request")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "per-request timeout")

	return cmd
}

func (c *CLI) serverCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if redisURL == "" || noCache {
		return newCache(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}
