// Package storage provides the key-value persistence behind saved trips.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// tripsDir is the name of the trips directory.
	tripsDir = ".trips"
	// dataDir is the subdirectory holding one file per key.
	dataDir = "data"
	// configFile is the name of the config file within .trips/.
	configFile = "config.yaml"
)

// StorageConfig contains settings stored in .trips/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .trips/ directory. Each key is kept in its own
// file under .trips/data/.
type Storage struct {
	root   string // path to directory containing .trips/
	logger *slog.Logger
}

// Open returns a Storage for the given directory.
// Returns error if .trips/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, tripsDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".trips/ directory not found in %s (run `trips init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .trips/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".trips is not a directory")
	}

	return &Storage{root: dir, logger: slog.Default()}, nil
}

// Init creates the .trips/ directory.
// Returns error if .trips/ already exists.
func Init(dir string) (*Storage, error) {
	path := filepath.Join(dir, tripsDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".trips/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .trips/: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(path, dataDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .trips/data/: %w", err)
	}

	cfg := StorageConfig{Version: 1}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir, logger: slog.Default()}, nil
}

// SetLogger replaces the logger used to report read failures.
func (s *Storage) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Root returns the root directory containing .trips/.
func (s *Storage) Root() string {
	return s.root
}

// TripsPath returns the path to the .trips/ directory.
func (s *Storage) TripsPath() string {
	return filepath.Join(s.root, tripsDir)
}

// keyPath returns the file holding key. Keys are escaped so that any key maps
// to a single file name inside .trips/data/.
func (s *Storage) keyPath(key string) (string, error) {
	if key == "" || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, tripsDir, dataDir, url.PathEscape(key)), nil
}

// Read implements Store.
func (s *Storage) Read(ctx context.Context, key string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	path, err := s.keyPath(key)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read key", "key", key, "error", err)
		}
		return "", false
	}
	return string(data), true
}

// Write implements Store. The value is written to a temporary file and
// renamed into place so a crash never leaves a half-written value behind.
func (s *Storage) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
