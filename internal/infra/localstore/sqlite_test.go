package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func put(t *testing.T, s *Store, namespace, key, value string) {
	t.Helper()
	require.NoError(t, s.Update(context.Background(), namespace, key, func([]byte, bool) ([]byte, error) {
		return []byte(value), nil
	}))
}

func TestStore_GetMissingAndOverwrite(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, ok, err := s.Get(ctx, "client-a", "wishlist")
	require.NoError(t, err)
	assert.False(t, ok)

	put(t, s, "client-a", "wishlist", `[1]`)
	put(t, s, "client-a", "wishlist", `[2]`)

	v, ok, err := s.Get(ctx, "client-a", "wishlist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, string(v))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	put(t, s, "client-a", "wishlist", "a")
	put(t, s, "client-b", "wishlist", "b")

	v, _, err := s.Get(ctx, "client-a", "wishlist")
	require.NoError(t, err)
	assert.Equal(t, "a", string(v))

	v, _, err = s.Get(ctx, "client-b", "wishlist")
	require.NoError(t, err)
	assert.Equal(t, "b", string(v))
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	err := s.Update(ctx, "c", "k", func(old []byte, found bool) ([]byte, error) {
		assert.False(t, found)
		return []byte("first"), nil
	})
	require.NoError(t, err)

	err = s.Update(ctx, "c", "k", func(old []byte, found bool) ([]byte, error) {
		assert.True(t, found)
		return append(old, []byte("+second")...), nil
	})
	require.NoError(t, err)

	v, _, err := s.Get(ctx, "c", "k")
	require.NoError(t, err)
	assert.Equal(t, "first+second", string(v))
}

func TestStore_UpdateErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	put(t, s, "c", "k", "keep")

	boom := errors.New("boom")
	err := s.Update(ctx, "c", "k", func(old []byte, found bool) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	v, _, err := s.Get(ctx, "c", "k")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(v))
}
