// Package storage provides the object store abstraction backing redirect
// objects, with S3 and in-memory implementations.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cdn-short-url/config"
)

// Common errors returned by storage operations.
var (
	ErrInvalidConfig = errors.New("invalid object store configuration")
)

// ObjectStore defines the operations the publisher needs from the backing
// object store.
type ObjectStore interface {
	// Exists reports whether an object is already present at key. The probe
	// is metadata-only; no object body is transferred. Backends must
	// normalize their "missing object" responses to (false, nil) and
	// propagate every other failure unchanged.
	Exists(ctx context.Context, key string) (bool, error)

	// PutRedirect writes a zero-byte object at key whose metadata redirects
	// to nativeURL. Writes are last-writer-wins; the store performs no
	// conditional check between a probe and a subsequent write.
	PutRedirect(ctx context.Context, key, nativeURL string) error
}

// NewObjectStore constructs the ObjectStore selected by the configuration.
// The store is built once during startup and injected into the service; it
// is safe for concurrent use and holds no request-specific state.
func NewObjectStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ObjectStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		return NewS3Store(ctx, cfg, logger)
	case "memory":
		return NewMemoryStore(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend type %q", ErrInvalidConfig, cfg.StorageBackend)
	}
}
