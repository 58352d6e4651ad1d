package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "githubProjects", []byte(`{"value":[]}`)))

	got, err := store.Get(ctx, "githubProjects")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":[]}`, string(got))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"githubProjects"}, keys)

	require.NoError(t, store.Delete(ctx, "githubProjects"))
	_, err = store.Get(ctx, "githubProjects")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLockedStore_WaitsForOtherHolder(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	other := flock.New(filepath.Join(dir, LockFileName))
	require.NoError(t, other.Lock())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = store.Set(ctx, "curriculoInfo", []byte("{}"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, other.Unlock())
	assert.NoError(t, store.Set(context.Background(), "curriculoInfo", []byte("{}")))
}
