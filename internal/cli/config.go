package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tmorell/slidegrid/pkg/cache"
	"github.com/tmorell/slidegrid/pkg/grid"
)

// =============================================================================
// Application Configuration
// =============================================================================

// Cache backend names accepted in the config file.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config is the application configuration loaded from a TOML file.
// All fields have usable defaults, so a missing config file is not an error.
type Config struct {
	Engine grid.Config  `toml:"engine"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultAppConfig returns the configuration used when no file is present.
func DefaultAppConfig() Config {
	return Config{
		Engine: grid.DefaultConfig(),
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Redis:   cache.RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the configuration from path, or from the default location
// when path is empty. A missing default file yields the defaults; an explicit
// path that does not exist is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultAppConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q (must be one of: file, memory, redis, none)", c.Cache.Backend)
	}
	return nil
}

// configPath returns the config file location using XDG standard
// (~/.config/slidegrid/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
