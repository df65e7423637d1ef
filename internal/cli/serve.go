package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/funnelgraph/internal/server"
	"github.com/matzehuels/funnelgraph/pkg/cache"
	"github.com/matzehuels/funnelgraph/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	storeKind string // "memory" or "mongo"
	mongoURI  string // MongoDB connection string
	cacheKind string // "file", "redis", or "none"
	redisAddr string // Redis address
}

// newServeCmd creates the serve command for running the HTTP API.
//
// Default settings:
//   - addr: ":8080"
//   - store: memory (use --store mongo for persistence)
//   - cache: file (local file cache; use --cache redis for shared deployments)
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		storeKind: "memory",
		cacheKind: "file",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the FunnelGraph HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "chart store backend: memory (default), mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string (with --store mongo)")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "render cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address (with --cache redis)")

	return cmd
}

// runServe wires the configured backends and runs the server until the
// context is canceled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	st, err := buildStore(ctx, opts)
	if err != nil {
		return err
	}
	c, err := buildCache(ctx, opts)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  st,
		Cache:  c,
		Logger: logger,
	})
	defer func() {
		if err := srv.Close(context.Background()); err != nil {
			logger.Error("close server", "error", err)
		}
	}()

	return srv.ListenAndServe(ctx)
}

// buildStore constructs the chart store backend.
func buildStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory' or 'mongo')", opts.storeKind)
	}
}

// buildCache constructs the render cache backend.
func buildCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", opts.cacheKind)
	}
}
