package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/persist"
	"github.com/matzehuels/pegplanner/pkg/store"
)

const defaultServerAddr = "127.0.0.1:8080"

// Config is the config.toml document.
//
//	catalog = "~/pegboard/extra-bins.toml"
//
//	[store]
//	backend = "sqlite"
//	sqlite_path = "/var/lib/pegplanner/layouts.db"
//
//	[export]
//	dir = "~/Pictures"
type Config struct {
	// Catalog is an optional catalog extension file.
	Catalog string       `toml:"catalog"`
	Grid    GridConfig   `toml:"grid"`
	Store   StoreConfig  `toml:"store"`
	Export  ExportConfig `toml:"export"`
	Server  ServerConfig `toml:"server"`
}

// GridConfig sets the peg spacing in pixels.
type GridConfig struct {
	Size float64 `toml:"size"`
}

// StoreConfig selects where the layout is saved.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Path          string `toml:"path"` // file backend directory
	Key           string `toml:"key"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	SQLitePath    string `toml:"sqlite_path"`
}

// ExportConfig controls image exports.
type ExportConfig struct {
	Dir   string  `toml:"dir"`
	Scale float64 `toml:"scale"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	cfg := Config{
		Grid: GridConfig{Size: grid.DefaultSize},
		Store: StoreConfig{
			Backend:       store.BackendFile,
			Key:           persist.DefaultKey,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Export: ExportConfig{Dir: ".", Scale: 2},
		Server: ServerConfig{Addr: defaultServerAddr},
	}
	if dir, err := dataDir(); err == nil {
		cfg.Store.Path = filepath.Join(dir, "layouts")
		cfg.Store.SQLitePath = filepath.Join(dir, "layouts.db")
	}
	return cfg
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the user named it explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, perrors.New(perrors.ErrCodeInvalidConfig, "%s: unknown setting %q", path, undecoded[0].String())
	}
	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Store.SQLitePath = expandHome(cfg.Store.SQLitePath)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

func (c Config) validate() error {
	if !slices.Contains(store.Backends, strings.ToLower(c.Store.Backend)) {
		return perrors.New(perrors.ErrCodeInvalidConfig,
			"unknown store backend %q (want one of %s)", c.Store.Backend, strings.Join(store.Backends, ", "))
	}
	if c.Grid.Size <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "grid size must be positive, got %v", c.Grid.Size)
	}
	if c.Export.Scale <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "export scale must be positive, got %v", c.Export.Scale)
	}
	return perrors.ValidateStoreKey(c.Store.Key)
}

func (c Config) storeConfig() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		Dir:           c.Store.Path,
		RedisAddr:     c.Store.RedisAddr,
		MongoURI:      c.Store.MongoURI,
		MongoDatabase: c.Store.MongoDatabase,
		SQLitePath:    c.Store.SQLitePath,
	}
}

// encode writes the effective config as TOML.
func (c Config) encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
