// Package cli implements the pegplanner command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pegplanner/pkg/buildinfo"
	"github.com/matzehuels/pegplanner/pkg/catalog"
	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/observability"
	"github.com/matzehuels/pegplanner/pkg/planner"
	"github.com/matzehuels/pegplanner/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pegplanner"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"
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

	// Persistent flag values.
	configPath string
	backend    string
	profile    string

	out    io.Writer
	logOut io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout, logOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pegplanner lays out tools and bins on a pegboard",
		Long:         `Pegplanner is a planner for pegboard layouts: pick a board, place hooks, bins and props on its peg grid, and export the result as an image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Hook events log at debug level, visible with --verbose.
			observability.NewLogHooks(c.Logger).Install()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pegplanner/config.toml)")
	flags.StringVar(&c.backend, "store", "", "store backend: "+strings.Join(store.Backends, ", "))
	flags.StringVar(&c.profile, "profile", "", "named layout kept alongside the default one")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.nudgeCommand())
	root.AddCommand(c.rotateCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Planner Factory
// =============================================================================

// session is an open planner together with the store it owns.
type session struct {
	*planner.Planner
	cfg   Config
	store store.Store
}

func (s *session) Close() error { return s.store.Close() }

// open loads the config, opens the store and loads the layout.
func (c *CLI) open(ctx context.Context) (*session, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, cfg.storeConfig())
	if err != nil {
		return nil, err
	}
	if c.profile != "" {
		if err := perrors.ValidateStoreKey(c.profile); err != nil {
			s.Close()
			return nil, err
		}
		s = store.Scoped(s, "profile:"+c.profile+":")
	}

	p, err := planner.Open(ctx, planner.Options{
		Store:    s,
		Catalog:  cat,
		Key:      cfg.Store.Key,
		GridSize: cfg.Grid.Size,
		Scale:    cfg.Export.Scale,
		Logger:   c.Logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}

	rep := p.LoadReport()
	for _, w := range rep.Warnings {
		c.Logger.Warn(w)
	}
	if rep.Err != nil {
		c.Logger.Warn("saved layout was unreadable, starting fresh", "err", rep.Err)
	}
	c.Logger.Debug("layout loaded", "backend", cfg.Store.Backend, "key", p.Key(), "source", rep.Source, "items", p.Layout().Len())

	return &session{Planner: p, cfg: cfg, store: s}, nil
}

// config loads the config file and applies flag overrides.
func (c *CLI) config() (Config, error) {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, configFile)
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return Config{}, err
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
	}
	return cfg, cfg.validate()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "open catalog extension")
	}
	defer f.Close()
	ext, err := catalog.DecodeExtension(f)
	if err != nil {
		return nil, err
	}
	return catalog.Extend(catalog.Default(), ext)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/pegplanner/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// dataDir returns the data directory using XDG standard (~/.local/share/pegplanner/).
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if home := os.Getenv(env); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
