// Package storage is the durable per-browser-context state layer. Session,
// cart and favorites records each live under their own key and must degrade
// to "absent" when malformed, so the interface is a plain byte KV.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key. Callers treat it as an empty slot, not a
// failure.
var ErrNotFound = errors.New("storage: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
