package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore implements the ObjectStore interface using an in-memory map.
// It backs local development and integration tests; redirect targets are
// keyed by object key, mirroring the remote store's last-writer-wins
// semantics.
type MemoryStore struct {
	objects map[string]string // key -> redirect target
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates and returns a new MemoryStore instance.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		objects: make(map[string]string),
		logger:  logger,
	}
}

// Exists reports whether an object is present at key.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	select {
	case <-ctx.Done():
		m.logger.Warn("Exists operation cancelled", zap.String("key", key))
		return false, ctx.Err()
	default:
		m.mu.RLock()
		defer m.mu.RUnlock()

		_, exists := m.objects[key]
		return exists, nil
	}
}

// PutRedirect stores the redirect target for key. An existing entry is
// silently overwritten, the same way a plain S3 PutObject behaves.
func (m *MemoryStore) PutRedirect(ctx context.Context, key, nativeURL string) error {
	select {
	case <-ctx.Done():
		m.logger.Warn("PutRedirect operation cancelled", zap.String("key", key))
		return ctx.Err()
	default:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.objects[key] = nativeURL
		m.logger.Info("Redirect object written",
			zap.String("key", key),
			zap.String("nativeURL", nativeURL))
		return nil
	}
}

// RedirectTarget returns the stored redirect target for key. It exists so
// tests can verify what a probe-and-write round trip left behind.
func (m *MemoryStore) RedirectTarget(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target, exists := m.objects[key]
	return target, exists
}

// Len returns the number of stored redirect objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.objects)
}
