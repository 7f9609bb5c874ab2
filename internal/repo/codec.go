// Package repo owns CRUD and query persistence for the expense, category
// and budget collections. Each collection lives in one JSON-encoded slot
// of the key-value store; every mutation is a full read-modify-write of
// that slot, so callers serialize writes to the same entity themselves.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"outgo/internal/kv"
)

// readSlot decodes the collection stored under key. A missing slot
// reads as an empty collection; a slot that exists but cannot be
// decoded is an error, never silently reset.
func readSlot[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode slot %q: %w", key, err)
	}
	return items, nil
}

// writeSlot rewrites the whole slot. A nil collection is stored as an
// empty JSON array so the slot layout stays a sequence.
func writeSlot[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", key, err)
	}
	if err := store.Put(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist slot %q: %w", key, err)
	}
	return nil
}
