package cli

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cafeplan/internal/api"
	"github.com/matzehuels/cafeplan/pkg/design"
)

type serveOpts struct {
	addr      string
	store     string
	designDir string
	mongoURI  string
	ttl       time.Duration
	baseURL   string
	cleanup   time.Duration
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		store:   design.BackendMemory,
		ttl:     design.DefaultTTL,
		cleanup: design.DefaultCleanupInterval,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Rendered designs are kept for --design-ttl (10 minutes by default) and can be
downloaded from /api/designs/{id} until then.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", opts.addr, "listen address")
	f.StringVar(&opts.store, "store", opts.store, "design store: memory, file, redis, mongo")
	f.StringVar(&opts.designDir, "design-dir", "", "directory for --store file (default ~/.local/share/cafeplan/designs)")
	f.StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB URI for --store mongo")
	f.DurationVar(&opts.ttl, "design-ttl", opts.ttl, "how long rendered designs stay downloadable")
	f.DurationVar(&opts.cleanup, "cleanup-interval", opts.cleanup, "how often expired designs are removed")
	f.StringVar(&opts.baseURL, "base-url", "", "prefix for download links, e.g. https://plans.example.com")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := design.Open(ctx, design.Config{
		Backend: opts.store,
		Dir:     opts.designDir,
		Redis:   design.RedisConfig{Addr: c.redisAddr},
		Mongo:   design.MongoConfig{URI: opts.mongoURI},
	})
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("design store ready", "backend", opts.store, "ttl", opts.ttl)

	srv := api.New(api.Config{
		Runner:    runner,
		Store:     store,
		DesignTTL: opts.ttl,
		BaseURL:   opts.baseURL,
		Logger:    logger,
	})
	janitor := &design.Janitor{
		Store:    store,
		Interval: opts.cleanup,
		Logger:   logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return janitor.Run(gctx) })
	g.Go(func() error { return srv.ListenAndServe(gctx, opts.addr) })

	err = g.Wait()
	if stderrors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}
