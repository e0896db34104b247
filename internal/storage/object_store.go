package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by ObjectStore.Get for unknown keys
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a flat key/value store for serialized documents
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Name() string
}
