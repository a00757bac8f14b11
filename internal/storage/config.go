package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .trips/).
	userConfigFile = ".tripsconfig.yaml"

	// backendEnv overrides the configured backend.
	backendEnv = "TRIPS_BACKEND"
)

// Backend names accepted in .tripsconfig.yaml.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// View modes for listing trips.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Default configuration values
const (
	DefaultBackend     = BackendFile
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "pretty"
	DefaultView        = ViewGrid
	DefaultRedisAddr   = "localhost:6379"
	DefaultBadgerDir   = "badger"
	DefaultLoadDelay   = time.Duration(0)
	DefaultListenAddr  = "127.0.0.1:8080"
	DefaultRedisPrefix = "trips:"
)

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Prefix is prepended to every key.
	Prefix string `yaml:"prefix"`
}

// Config represents user configuration from .tripsconfig.yaml.
// This file is user-managed and never written by trips.
type Config struct {
	// Backend selects the key-value store: file, memory, badger or redis.
	Backend string `yaml:"backend"`

	// BadgerPath is the badger data directory. Relative paths are resolved
	// against .trips/. Defaults to .trips/badger.
	BadgerPath string `yaml:"badger_path"`

	Redis RedisConfig `yaml:"redis"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// LoadDelay simulates a slow initial load.
	LoadDelay time.Duration `yaml:"load_delay"`

	// DefaultView is grid or list.
	DefaultView string `yaml:"default_view"`

	// ListenAddr is the address used by `trips serve`.
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:     DefaultBackend,
		BadgerPath:  DefaultBadgerDir,
		Redis:       RedisConfig{Addr: DefaultRedisAddr, Prefix: DefaultRedisPrefix},
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		LoadDelay:   DefaultLoadDelay,
		DefaultView: DefaultView,
		ListenAddr:  DefaultListenAddr,
	}
}

// LoadConfig loads .tripsconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .trips/ (in the same directory).
// Partial config files are merged with defaults. TRIPS_BACKEND, when set,
// wins over the file.
func (s *Storage) LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
		}
	}

	if b := os.Getenv(backendEnv); b != "" {
		cfg.Backend = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	switch c.Backend {
	case BackendFile, BackendMemory, BackendBadger, BackendRedis:
	default:
		return fmt.Errorf("invalid backend %q in %s (expected file, memory, badger or redis)", c.Backend, userConfigFile)
	}

	c.DefaultView = strings.ToLower(c.DefaultView)
	switch c.DefaultView {
	case ViewGrid, ViewList:
	default:
		return fmt.Errorf("invalid default_view %q in %s (expected grid or list)", c.DefaultView, userConfigFile)
	}

	if c.LoadDelay < 0 {
		return fmt.Errorf("load_delay must not be negative")
	}
	return nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}

// ResolveBadgerPath returns the badger directory for cfg, relative to .trips/.
func (s *Storage) ResolveBadgerPath(cfg *Config) string {
	p := cfg.BadgerPath
	if p == "" {
		p = DefaultBadgerDir
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.TripsPath(), p)
}
