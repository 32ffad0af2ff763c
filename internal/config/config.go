// Package config loads squarify settings.
//
// Settings come from an optional TOML file, then from SQUARIFY_* environment
// variables, then from command-line flags (applied by the CLI). Later
// sources override earlier ones.
//
//	# ~/.config/squarify/config.toml
//	width = 1920
//	height = 1080
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[storage]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "squarify"

// EnvPrefix is the prefix of environment overrides. Nested settings add
// their section name: SQUARIFY_WIDTH, SQUARIFY_CACHE_BACKEND,
// SQUARIFY_STORAGE_MONGO_URI.
const EnvPrefix = "SQUARIFY"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config holds all settings.
type Config struct {
	Width       float64 `toml:"width" envconfig:"WIDTH"`
	Height      float64 `toml:"height" envconfig:"HEIGHT"`
	Concurrency int     `toml:"concurrency" envconfig:"CONCURRENCY"`

	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend   string        `toml:"backend" envconfig:"BACKEND"`
	Dir       string        `toml:"dir" envconfig:"DIR"`
	RedisAddr string        `toml:"redis_addr" envconfig:"REDIS_ADDR"`
	TTL       time.Duration `toml:"ttl" envconfig:"TTL"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" envconfig:"ADDR"`
}

// StorageConfig selects where the HTTP API stores layouts.
type StorageConfig struct {
	Backend       string `toml:"backend" envconfig:"BACKEND"`
	MongoURI      string `toml:"mongo_uri" envconfig:"MONGO_URI"`
	MongoDatabase string `toml:"mongo_database" envconfig:"MONGO_DATABASE"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:       pipeline.DefaultWidth,
		Height:      pipeline.DefaultHeight,
		Concurrency: pipeline.DefaultConcurrency,
		Cache: CacheConfig{
			Backend:   CacheFile,
			Dir:       DefaultCacheDir(),
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Backend:       StorageMemory,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: AppName,
		},
	}
}

// Load reads path (or the default config file when path is empty), applies
// environment overrides and validates the result. A missing default file is
// not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	return nil
}

// Validate checks backend names and numeric ranges.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "canvas must have positive size, got %vx%v", c.Width, c.Height)
	}
	if c.Concurrency < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if err := errs.ValidateFormat(c.Cache.Backend, CacheFile, CacheRedis, CacheNone); err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}
	if err := errs.ValidateFormat(c.Storage.Backend, StorageMemory, StorageMongo); err != nil {
		return fmt.Errorf("storage backend: %w", err)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/squarify/config.toml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/squarify, or "" when no cache
// directory can be determined.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName)
}
