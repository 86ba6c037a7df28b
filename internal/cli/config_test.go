package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("implicit missing config: %v", err)
	}
	if cfg.Store.Backend != "file" || cfg.Grid.Size != 32 || cfg.Export.Scale != 2 {
		t.Errorf("defaults = %+v", cfg)
	}

	if _, err := loadConfig(path, true); !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing config error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
catalog = "/etc/pegplanner/extra.toml"

[store]
backend = "sqlite"
sqlite_path = "/tmp/layouts.db"
key = "garage"

[export]
scale = 3

[server]
addr = ":9000"
`)

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"catalog", cfg.Catalog, "/etc/pegplanner/extra.toml"},
		{"backend", cfg.Store.Backend, "sqlite"},
		{"sqlite path", cfg.Store.SQLitePath, "/tmp/layouts.db"},
		{"key", cfg.Store.Key, "garage"},
		{"scale", cfg.Export.Scale, 3.0},
		{"addr", cfg.Server.Addr, ":9000"},
		{"grid kept", cfg.Grid.Size, 32.0},
		{"export dir kept", cfg.Export.Dir, "."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[store]\nbackedn = \"redis\"\n")

	_, err := loadConfig(path, true)
	if !perrors.Is(err, perrors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "backedn") {
		t.Errorf("error = %v, want INVALID_CONFIG naming the key", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"redis", func(c *Config) { c.Store.Backend = "Redis" }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }, false},
		{"zero grid", func(c *Config) { c.Grid.Size = 0 }, false},
		{"negative scale", func(c *Config) { c.Export.Scale = -1 }, false},
		{"bad key", func(c *Config) { c.Store.Key = "../up" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			if err := cfg.validate(); (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestConfigEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := defaultConfig().encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, buf.String())

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("encoded config does not load back: %v\n%s", err, buf.String())
	}
	if cfg.Store.Key != defaultConfig().Store.Key {
		t.Errorf("key = %q", cfg.Store.Key)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/boards"); got != filepath.Join(home, "boards") {
		t.Errorf("expandHome(~/boards) = %q", got)
	}
	if got := expandHome("/abs/~/x"); got != "/abs/~/x" {
		t.Errorf("expandHome(/abs/~/x) = %q", got)
	}
}
