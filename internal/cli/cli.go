// Package cli implements the cafeplan command-line interface.
//
// # Commands
//
//   - layout: pack a room and print or save the layout
//   - render: write the layout as SVG, PNG, PDF, JSON, msgpack, XLSX or text
//   - preview: browse rows in the terminal and turn them around
//   - init: write a parameter file with the default settings
//   - serve: run the HTTP API
//   - cache: inspect or clear the local layout cache
//
// Every command takes an optional parameter file (TOML, YAML or JSON).
// Without one the default 700x500 cm room is used.
//
// # Logging
//
// --verbose (-v) switches to debug level and logs pipeline, cache and store
// events. The logger travels in the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cafeplan/pkg/buildinfo"
	"github.com/matzehuels/cafeplan/pkg/cache"
	"github.com/matzehuels/cafeplan/pkg/errors"
	"github.com/matzehuels/cafeplan/pkg/params"
	"github.com/matzehuels/cafeplan/pkg/pipeline"
)

const appName = "cafeplan"

// Cache backends for --cache-backend.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// Log levels exported for main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	noCache      bool
	cacheBackend string
	redisAddr    string
	cachePrefix  string
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		cacheBackend: cacheBackendFile,
		redisAddr:    "localhost:6379",
	}
}

// SetLogLevel changes the logger level. At debug level the observability
// hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "cafeplan lays out tables and chairs in a net cafe",
		Long: `cafeplan packs a rectangular room with table-and-chair units in aisle-separated
rows, keeps an optional reception desk corner free, and renders the result as
drawings, spreadsheets or data files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the layout cache")
	pf.StringVar(&c.cacheBackend, "cache-backend", c.cacheBackend, "cache backend: file, redis, none")
	pf.StringVar(&c.redisAddr, "redis-addr", c.redisAddr, "redis address for --cache-backend redis and --store redis")
	pf.StringVar(&c.cachePrefix, "cache-prefix", "", "namespace for cache keys, e.g. staging:")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.newKeyer(), c.Logger), nil
}

// newKeyer scopes cache keys under --cache-prefix when one is set.
func (c *CLI) newKeyer() cache.Keyer {
	if c.cachePrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cachePrefix)
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cacheBackend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:    c.redisAddr,
			Prefix:  appName + ":",
			Backoff: cache.DefaultBackoff,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect cache")
		}
		return rc, nil
	case cacheBackendFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (use file, redis or none)", c.cacheBackend)
}

// cacheDir returns $XDG_CACHE_HOME/cafeplan or ~/.cache/cafeplan.
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

// loadParams reads the optional parameter file argument.
func loadParams(args []string) (params.Parameters, error) {
	if len(args) == 0 {
		return params.Default(), nil
	}
	return params.Load(args[0])
}

// layoutFlags are shared by every command that computes a layout.
type layoutFlags struct {
	reverseRows []int
	parallel    int
	desk        string
	noDesk      bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.reverseRows, "reverse-row", nil, "turn row N (0 = top) by 180 degrees; repeatable")
	cmd.Flags().IntVar(&f.parallel, "parallel", 0, "pack up to N rows concurrently")
	cmd.Flags().StringVar(&f.desk, "desk", "", "reserve a reception desk of this size, e.g. 150x80 or 1.5x0.8m")
	cmd.Flags().BoolVar(&f.noDesk, "no-desk", false, "ignore the desk in the parameter file")
	cmd.ValidArgsFunction = completeParamsFile
}

// options builds pipeline options from the parameter file and the flags.
func (f *layoutFlags) options(args []string) (pipeline.Options, error) {
	p, err := loadParams(args)
	if err != nil {
		return pipeline.Options{}, err
	}
	if f.desk != "" {
		p.SetDesk(f.desk, "")
	}
	if f.noDesk {
		p.RemoveDesk()
	}
	return pipeline.Options{
		Params:       p,
		ReverseRows:  f.reverseRows,
		ParallelRows: f.parallel,
	}, nil
}
