// Package kv is the durable key-value substrate the repositories persist
// into: string keys, string values, one slot per entity collection.
package kv

import "context"

// Store persists string key/value pairs. Get distinguishes an unset key
// (ok=false, no error) from a read failure; whatever a slot holds is
// returned verbatim — decoding is the caller's concern.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
