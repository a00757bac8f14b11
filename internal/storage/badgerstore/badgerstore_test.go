package badgerstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, path string) (*Store, func()) {
	t.Helper()

	s, err := Open(path, nil)
	require.NoError(t, err)

	return s, func() {
		s.Close()
	}
}

func TestStore_ReadWriteDelete(t *testing.T) {
	s, cleanup := setupTestStore(t, "")
	defer cleanup()

	ctx := context.Background()

	_, ok := s.Read(ctx, "saved-trips")
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "saved-trips", `[{"id":"trip1"}]`))
	v, ok := s.Read(ctx, "saved-trips")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"trip1"}]`, v)

	require.NoError(t, s.Write(ctx, "saved-trips", "[]"))
	v, _ = s.Read(ctx, "saved-trips")
	assert.Equal(t, "[]", v)

	require.NoError(t, s.Delete(ctx, "saved-trips"))
	_, ok = s.Read(ctx, "saved-trips")
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "never-written"))
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Write(ctx, "travel-user", `{"id":"user-1"}`))
	require.NoError(t, s.Shutdown())

	reopened, cleanup := setupTestStore(t, dir)
	defer cleanup()

	v, ok := reopened.Read(ctx, "travel-user")
	require.True(t, ok)
	assert.Equal(t, `{"id":"user-1"}`, v)
}
