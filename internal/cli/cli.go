// Package cli implements the squarify command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/squarify/internal/config"
	"github.com/matzehuels/squarify/pkg/buildinfo"
	"github.com/matzehuels/squarify/pkg/cache"
	"github.com/matzehuels/squarify/pkg/pipeline"
	"github.com/matzehuels/squarify/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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

	// Config is loaded before any subcommand runs. Flags override it.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Squarify lays out weighted values as squarified treemaps",
		Long:         `Squarify partitions a rectangle into one tile per value, each tile's area proportional to its value and as close to square as the squarified treemap algorithm allows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/squarify/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "cache", cfg.Cache.Backend, "storage", cfg.Storage.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if c.Config.Cache.Backend == config.CacheRedis && !noCache {
		// A shared Redis may hold keys of other applications.
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}

	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", c.Config.Cache.RedisAddr, err)
		}
		return rc, nil
	default:
		if c.Config.Cache.Dir == "" {
			c.Logger.Warn("no cache directory available, caching disabled")
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(c.Config.Cache.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// newStore opens the configured layout store.
func (c *CLI) newStore(ctx context.Context) (storage.Store, error) {
	switch c.Config.Storage.Backend {
	case config.StorageMongo:
		s, err := storage.NewMongoStore(ctx, c.Config.Storage.MongoURI, c.Config.Storage.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return s, nil
	default:
		return storage.NewMemoryStore(), nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
