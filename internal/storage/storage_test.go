package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("init in empty directory creates .trips structure", func(t *testing.T) {
		dir := t.TempDir()

		s, err := Init(dir)
		require.NoError(t, err)
		require.NotNil(t, s)

		info, err := os.Stat(filepath.Join(dir, ".trips"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		_, err = os.Stat(filepath.Join(dir, ".trips", "config.yaml"))
		require.NoError(t, err)

		info, err = os.Stat(filepath.Join(dir, ".trips", "data"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("init in directory with existing .trips returns error", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Init(dir)
		require.NoError(t, err)

		_, err = Init(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestOpen(t *testing.T) {
	t.Run("open existing .trips succeeds", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Init(dir)
		require.NoError(t, err)

		s, err := Open(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Root())
		assert.Equal(t, filepath.Join(dir, ".trips"), s.TripsPath())
	})

	t.Run("open without .trips returns error", func(t *testing.T) {
		_, err := Open(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("open with .trips as a file returns error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".trips"), []byte("x"), 0644))

		_, err := Open(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestStorageReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	s, err := Init(t.TempDir())
	require.NoError(t, err)

	_, ok := s.Read(ctx, "saved-trips")
	assert.False(t, ok, "unwritten key should be absent")

	require.NoError(t, s.Write(ctx, "saved-trips", `[{"id":"trip1"}]`))
	v, ok := s.Read(ctx, "saved-trips")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"trip1"}]`, v)

	require.NoError(t, s.Write(ctx, "saved-trips", "[]"))
	v, ok = s.Read(ctx, "saved-trips")
	require.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, s.Delete(ctx, "saved-trips"))
	_, ok = s.Read(ctx, "saved-trips")
	assert.False(t, ok)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, "saved-trips"))
}

func TestStorage_KeysAreEscaped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write(ctx, "a/b", "slash"))
	require.NoError(t, s.Write(ctx, "a", "plain"))

	v, ok := s.Read(ctx, "a/b")
	require.True(t, ok)
	assert.Equal(t, "slash", v)

	// The value must live inside .trips/data/, not in a subdirectory.
	entries, err := os.ReadDir(filepath.Join(dir, ".trips", "data"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "unexpected directory %s", e.Name())
	}

	assert.Error(t, s.Write(ctx, "..", "x"))
	assert.Error(t, s.Write(ctx, "", "x"))
	_, ok = s.Read(ctx, "..")
	assert.False(t, ok)
}

func TestStorage_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, "travel-user", `{"id":"user-1"}`))

	reopened, err := Open(dir)
	require.NoError(t, err)
	v, ok := reopened.Read(ctx, "travel-user")
	require.True(t, ok)
	assert.Equal(t, `{"id":"user-1"}`, v)
}

func TestStorage_CancelledContext(t *testing.T) {
	s, err := Init(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Write(ctx, "k", "v"), context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
	_, ok := s.Read(ctx, "k")
	assert.False(t, ok)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Read(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, m.Write(ctx, "k", "v1"))
	require.NoError(t, m.Write(ctx, "k", "v2"))
	v, ok := m.Read(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 2, m.Writes())

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, ok = m.Read(ctx, "k")
	assert.False(t, ok)

	boom := errors.New("disk full")
	m.WriteErr = boom
	assert.ErrorIs(t, m.Write(ctx, "k", "v3"), boom)
	_, ok = m.Read(ctx, "k")
	assert.False(t, ok, "failed write must not store anything")
	assert.Equal(t, 2, m.Writes())
}
