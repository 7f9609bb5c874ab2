package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outgo/internal/kv"
)

func TestBudgetDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	r := NewBudgetRepo(kv.NewMemoryStore())

	amount, err := r.Get(ctx)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestBudgetSetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	r := NewBudgetRepo(store)

	require.NoError(t, r.Set(ctx, decimal.RequireFromString("450")))
	amount, err := r.Get(ctx)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("450")))

	// A single scalar slot: the new value replaces the old outright.
	require.NoError(t, r.Set(ctx, decimal.RequireFromString("99.50")))
	amount, err = r.Get(ctx)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("99.50")))

	raw, ok, err := store.Get(ctx, "budget")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "99.50", raw, "stored as a bare JSON number")
}

func TestBudgetMalformedSlot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "budget", `not-a-number`))

	_, err := NewBudgetRepo(store).Get(ctx)
	require.Error(t, err)
}
