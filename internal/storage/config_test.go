package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUserConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, ".tripsconfig.yaml"), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("no .tripsconfig.yaml returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("full .tripsconfig.yaml loads all values", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, `backend: redis
badger_path: /var/lib/trips
redis:
  addr: redis.local:6380
  password: secret
  db: 2
  prefix: "me:"
log_level: debug
log_format: json
load_delay: 1s
default_view: list
listen_addr: 127.0.0.1:9090
`)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, BackendRedis, cfg.Backend)
		assert.Equal(t, "/var/lib/trips", cfg.BadgerPath)
		assert.Equal(t, "redis.local:6380", cfg.Redis.Addr)
		assert.Equal(t, "secret", cfg.Redis.Password)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.Equal(t, "me:", cfg.Redis.Prefix)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, time.Second, cfg.LoadDelay)
		assert.Equal(t, ViewList, cfg.DefaultView)
		assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
	})

	t.Run("partial .tripsconfig.yaml merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "default_view: LIST\n")

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, ViewList, cfg.DefaultView)
		assert.Equal(t, DefaultBackend, cfg.Backend)
		assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "backend: [unclosed\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("unknown backend returns error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "backend: postgres\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid backend")
	})

	t.Run("unknown view returns error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "default_view: carousel\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default_view")
	})

	t.Run("environment overrides backend", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "backend: file\n")
		t.Setenv("TRIPS_BACKEND", "Memory")

		cfg, err := s.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Backend)
	})
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".tripsconfig.yaml"), s.ConfigPath())
}

func TestResolveBadgerPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(dir, ".trips", "badger"), s.ResolveBadgerPath(cfg))

	cfg.BadgerPath = "/abs/path"
	assert.Equal(t, "/abs/path", s.ResolveBadgerPath(cfg))

	cfg.BadgerPath = ""
	assert.Equal(t, filepath.Join(dir, ".trips", "badger"), s.ResolveBadgerPath(cfg))
}
