// Package config loads lexspace configuration from a TOML file.
//
// The file lives at ~/.config/lexspace/config.toml (XDG_CONFIG_HOME is
// honored). A missing file is not an error; defaults apply.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/lexworks/lexspace/pkg/errors"
)

// Backend names accepted in the cache and documents sections.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Layout    LayoutConfig    `toml:"layout"`
	Cache     CacheConfig     `toml:"cache"`
	Documents DocumentsConfig `toml:"documents"`
	Serve     ServeConfig     `toml:"serve"`
}

// LayoutConfig tunes the workspace layout engine.
type LayoutConfig struct {
	// MinPaneWeight is the floor below which no pane's weight may fall.
	MinPaneWeight float64 `toml:"min_pane_weight"`
	// DefaultPaneWeight is the weight assigned to newly introduced panes.
	DefaultPaneWeight float64 `toml:"default_pane_weight"`
}

// CacheConfig selects the snapshot cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, none
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// DocumentsConfig selects the document store backend.
type DocumentsConfig struct {
	Backend  string `toml:"backend"` // file (default), mongo
	Dir      string `toml:"dir"`     // file backend: document directory (default ".")
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_database"`
}

// ServeConfig configures the preview HTTP server.
type ServeConfig struct {
	Listen string `toml:"listen"` // address, e.g. "127.0.0.1:8787"
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			MinPaneWeight:     0.1,
			DefaultPaneWeight: 0.5,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Documents: DocumentsConfig{
			Backend: BackendFile,
			Dir:     ".",
		},
		Serve: ServeConfig{
			Listen: "127.0.0.1:8787",
		},
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lexspace", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lexspace", "config.toml"), nil
}

// Load reads the config file at path, layering it over defaults.
// A missing file returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values and cross-field requirements.
func (c *Config) Validate() error {
	if c.Layout.MinPaneWeight <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "layout.min_pane_weight must be positive")
	}
	if c.Layout.DefaultPaneWeight <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "layout.default_pane_weight must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache.redis_addr required for redis backend")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache.backend must be file, redis, or none (got %q)", c.Cache.Backend)
	}
	switch c.Documents.Backend {
	case BackendFile:
	case BackendMongo:
		if c.Documents.MongoURI == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "documents.mongo_uri required for mongo backend")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "documents.backend must be file or mongo (got %q)", c.Documents.Backend)
	}
	if c.Serve.Listen == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "serve.listen must not be empty")
	}
	return nil
}
