// Package cli implements the slidegrid command-line interface.
//
// This package provides commands for computing slide layouts from input
// documents, inspecting layout results, serving the HTTP API, and managing
// the layout cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout for one slide input document
//   - batch: Compute layouts for a whole deck in parallel
//   - show: Pretty-print a layout document
//   - serve: Run the HTTP layout API
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tmorell/slidegrid/pkg/buildinfo"
	"github.com/tmorell/slidegrid/pkg/cache"
	"github.com/tmorell/slidegrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "slidegrid"

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
	Config Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultAppConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath string
		redisAddr  string
	)

	root := &cobra.Command{
		Use:          "slidegrid",
		Short:        "Slidegrid positions slide content on a presentation grid",
		Long:         `Slidegrid is a layout engine that places semantic content containers on a 160x90 presentation grid, selecting a design pattern and refining the placement until spacing and balance targets are met.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if redisAddr != "" {
				c.Config.Cache.Backend = CacheBackendRedis
				c.Config.Cache.Redis.Addr = redisAddr
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: $XDG_CONFIG_HOME/slidegrid/config.toml)")
	root.PersistentFlags().StringVar(&redisAddr, "redis", "", "use a Redis cache at this address (overrides the configured backend)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend selected by the configuration.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.Redis)
	case CacheBackendMemory:
		return cache.NewMemoryCache(), nil
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/slidegrid/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// engineOptions builds pipeline options from the configured engine defaults.
func (c *CLI) engineOptions() pipeline.Options {
	cfg := c.Config.Engine
	return pipeline.Options{
		MaxIterations:     cfg.MaxIterations,
		WhiteSpaceMin:     cfg.WhiteSpaceMin,
		WhiteSpaceMax:     cfg.WhiteSpaceMax,
		Margin:            cfg.Margin,
		Gutter:            cfg.Gutter,
		BalanceTarget:     cfg.BalanceTarget,
		MaxBalanceRetries: cfg.MaxBalanceRetries,
	}
}

// registerEngineFlags exposes the engine tuning knobs on a command.
func registerEngineFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", opts.MaxIterations, "refinement iteration budget")
	cmd.Flags().Float64Var(&opts.WhiteSpaceMin, "white-space-min", opts.WhiteSpaceMin, "minimum acceptable white-space ratio")
	cmd.Flags().Float64Var(&opts.WhiteSpaceMax, "white-space-max", opts.WhiteSpaceMax, "maximum acceptable white-space ratio")
	cmd.Flags().IntVar(&opts.Margin, "margin", opts.Margin, "outer margin in grid units")
	cmd.Flags().IntVar(&opts.Gutter, "gutter", opts.Gutter, "gutter between containers in grid units")
	cmd.Flags().Float64Var(&opts.BalanceTarget, "balance-target", opts.BalanceTarget, "balance score worth finalizing without retries")
	cmd.Flags().IntVar(&opts.MaxBalanceRetries, "balance-retries", opts.MaxBalanceRetries, "retries allowed in pursuit of better balance")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")
}
