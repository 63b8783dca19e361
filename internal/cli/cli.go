// Package cli implements the lexspace command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lexworks/lexspace/internal/config"
	"github.com/lexworks/lexspace/pkg/buildinfo"
	"github.com/lexworks/lexspace/pkg/cache"
	"github.com/lexworks/lexspace/pkg/docstore"
	"github.com/lexworks/lexspace/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lexspace"
)

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
	Config config.Config
}

// New creates a new CLI instance with a default logger and configuration.
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

// LoadConfig loads the configuration file at path, or the default location
// if path is empty. A missing file leaves the defaults in place.
func (c *CLI) LoadConfig(path string) error {
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "lexspace",
		Short:        "Lexspace is a terminal workspace for lex documents",
		Long:         `Lexspace opens lex documents in a multi-pane terminal workspace with tabbed panes, weighted row layout, and live markdown previews that split or route into neighboring panes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.LoadConfig(configPath)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/lexspace/config.toml)")

	// Register all subcommands
	root.AddCommand(c.openCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Factory
// =============================================================================

// newNormalizer builds the weight normalizer from the layout configuration.
func (c *CLI) newNormalizer() workspace.Normalizer {
	return workspace.NewNormalizer(c.Config.Layout.MinPaneWeight, c.Config.Layout.DefaultPaneWeight)
}

// newPlacer builds the preview placer with production identifier allocation.
func (c *CLI) newPlacer() *workspace.Placer {
	return workspace.NewPlacer(workspace.NewFactory(nil), c.newNormalizer())
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCache creates the snapshot cache selected by the configuration.
// With noCache set, or when the configured backend is unavailable, it
// degrades to a null cache so commands keep working without one.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newStore creates the document store selected by the configuration.
// The dir argument overrides the configured document directory for the
// file backend when non-empty.
func (c *CLI) newStore(ctx context.Context, dir string) (docstore.Store, error) {
	switch c.Config.Documents.Backend {
	case config.BackendMongo:
		return docstore.NewMongoStore(ctx, docstore.MongoConfig{
			URI:      c.Config.Documents.MongoURI,
			Database: c.Config.Documents.MongoDB,
		})
	default:
		if dir == "" {
			dir = c.Config.Documents.Dir
		}
		return docstore.NewFileStore(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lexspace/).
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
