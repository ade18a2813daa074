package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by ScopeStorage.Get for absent keys.
var ErrKeyNotFound = errors.New("storage: key not found")

// ScopeStorage is a flat key-value area backing one retention scope. The
// durable scope survives restarts; the session scope does not.
type ScopeStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
