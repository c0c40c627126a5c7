// Package metadata persists small key-value records (session fields, the
// device identifier) in the client's local SQLite database.
package metadata

import (
	"context"
)

// Repository is a durable string-keyed byte store.
//
// Get returns (nil, nil) for a missing key; Delete of a missing key is a
// no-op. Implementations must be usable with both a plain connection and a
// transaction handle.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
