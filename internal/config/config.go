// Package config loads the ppmedit configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/ppmedit/config.toml
// (~/.config/ppmedit/config.toml when XDG_CONFIG_HOME is unset). PPMEDIT_CONFIG
// names a different file. A missing file yields Default().
//
//	verbose = false
//	assume_yes = false
//
//	[cache]
//	enabled = true
//	backend = "file"
//	dir = ""
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//	redis_password = ""
//	redis_db = 0
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ppmedit/pkg/cache"
	"github.com/matzehuels/ppmedit/pkg/errors"
)

const (
	appName = "ppmedit"

	// EnvPath overrides the config file location.
	EnvPath = "PPMEDIT_CONFIG"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the decoded configuration file.
type Config struct {
	Verbose   bool        `toml:"verbose"`
	AssumeYes bool        `toml:"assume_yes"`
	Cache     CacheConfig `toml:"cache"`
}

// CacheConfig is the [cache] table.
type CacheConfig struct {
	Enabled       bool     `toml:"enabled"`
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// Duration decodes TOML strings such as "24h" or "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid duration %q", string(text))
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   BackendFile,
			TTL:       Duration{cache.TTLArtifact},
			RedisAddr: "localhost:6379",
		},
	}
}

// Path returns the config file location, honoring PPMEDIT_CONFIG and
// XDG_CONFIG_HOME.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path, or at Path() when path is empty.
// Keys absent from the file keep their Default() values.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	if err := Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.GetCode(err), err, "config %s: %s", path, errors.UserMessage(err))
	}
	return cfg, nil
}

// Decode parses TOML text into cfg and validates the result.
// Unknown keys are an error.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be %q or %q, got %q", BackendFile, BackendRedis, c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_db must not be negative, got %d", c.Cache.RedisDB)
	}
	return nil
}

// CacheDir returns the configured cache directory or the per-user default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
