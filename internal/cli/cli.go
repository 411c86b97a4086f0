package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rootfront/pkg/buildinfo"
	"github.com/matzehuels/rootfront/pkg/cache"
	"github.com/matzehuels/rootfront/pkg/config"
	"github.com/matzehuels/rootfront/pkg/observability"
	"github.com/matzehuels/rootfront/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rootfront"

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
	envFile    string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// cache events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetAnalysisHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rootfront compares root architectures to their Pareto front",
		Long: `rootfront measures how close observed plant root systems come to the
optimal trade-off between total root length and travel distance from the
base. It builds the Pareto front of Steiner-like trees for each root, draws a
random baseline, and reports the distance of both to the front.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.envFile != "" {
				if err := config.LoadEnvFile(c.envFile); err != nil {
					return err
				}
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rootfront/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file with ROOTFRONT_* overrides")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.frontCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend, "unit", cfg.Scale.Unit)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if p := c.Config.Cache.Prefix; p != "" {
		keyer = cache.NewScopedKeyer(nil, p)
	}
	r := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	if c.Config.Cache.TTL > 0 {
		r.TTL = c.Config.Cache.TTL
	}
	return r
}

// newCache opens the configured backend. An unavailable backend degrades to
// no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache()
	}

	if cfg.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}

	dir := cacheDir(c.Config)
	var (
		local cache.Cache
		err   error
	)
	if cfg.Backend == config.BackendBolt {
		local, err = cache.NewBoltCache(dir)
	} else {
		local, err = cache.NewFileCache(dir)
	}
	if err != nil {
		c.Logger.Warn("local cache unavailable, caching disabled", "backend", cfg.Backend, "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return local
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or $XDG_CACHE_HOME/rootfront.
func cacheDir(cfg config.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return config.DefaultCacheDir()
}
