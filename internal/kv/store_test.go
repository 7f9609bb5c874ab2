package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "expenses")
	require.NoError(t, err)
	require.False(t, ok, "unset key reads as absent")

	require.NoError(t, s.Put(ctx, "expenses", `[]`))
	v, ok, err := s.Get(ctx, "expenses")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)

	require.NoError(t, s.Put(ctx, "expenses", `[{"id":"x"}]`))
	v, _, _ = s.Get(ctx, "expenses")
	require.Equal(t, `[{"id":"x"}]`, v, "put overwrites")

	require.NoError(t, s.Delete(ctx, "expenses"))
	_, ok, _ = s.Get(ctx, "expenses")
	require.False(t, ok)

	require.NoError(t, s.Delete(ctx, "expenses"), "deleting an absent key is a no-op")
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "outgo.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "budget")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(ctx, "budget", `450`))
	v, ok, err := s.Get(ctx, "budget")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `450`, v)

	require.NoError(t, s.Put(ctx, "budget", `500`))
	v, _, _ = s.Get(ctx, "budget")
	require.Equal(t, `500`, v)

	require.NoError(t, s.Delete(ctx, "budget"))
	_, ok, _ = s.Get(ctx, "budget")
	require.False(t, ok)
}
