// Package services implements the short URL generation loop.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cdn-short-url/config"
	"cdn-short-url/keygen"
	"cdn-short-url/metrics"
	"cdn-short-url/storage"
	"cdn-short-url/types"
)

// ErrMaxAttemptsReached is returned when a configured attempt bound is
// exhausted without finding an unused key.
var ErrMaxAttemptsReached = errors.New("maximum key generation attempts reached")

// ShortURLService publishes redirect objects and returns short URLs.
type ShortURLService interface {
	// GenerateShortURL picks an unused key under the configured prefix,
	// writes a redirect object for nativeURL at that key, and returns the
	// short URL reachable through the distribution host. The nativeURL is
	// not validated here; callers own well-formedness checks. Two calls
	// with the same nativeURL produce two distinct short URLs.
	GenerateShortURL(ctx context.Context, nativeURL string) (types.ShortURL, error)
}

type shortURLService struct {
	store            storage.ObjectStore
	prefix           string
	distributionHost string
	randomDigits     int
	maxAttempts      int
	logger           *zap.Logger
}

// NewShortURLService creates a ShortURLService over the given store. The
// store is injected, not constructed here, so the process owns exactly one
// client shared across all calls.
func NewShortURLService(store storage.ObjectStore, cfg *config.Config, logger *zap.Logger) ShortURLService {
	return &shortURLService{
		store:            store,
		prefix:           cfg.Prefix,
		distributionHost: cfg.DistributionHost,
		randomDigits:     cfg.RandomDigits,
		maxAttempts:      cfg.MaxAttempts,
		logger:           logger,
	}
}

// GenerateShortURL loops generate -> probe until a key is confirmed absent,
// then uploads the redirect object. The probe and the write are two separate
// round trips: a concurrent caller can claim the same key between them, in
// which case the later write wins silently. Probe errors other than the
// backend's "missing object" responses abort the call without a write.
func (s *shortURLService) GenerateShortURL(ctx context.Context, nativeURL string) (types.ShortURL, error) {
	attempts := 0
	for {
		suffix, err := keygen.Generate(s.randomDigits)
		if err != nil {
			return types.ShortURL{}, fmt.Errorf("generating key suffix: %w", err)
		}
		key := s.prefix + "/" + suffix
		attempts++

		exists, err := s.store.Exists(ctx, key)
		if err != nil {
			metrics.ProbeFailure()
			return types.ShortURL{}, err
		}
		if !exists {
			if err := s.store.PutRedirect(ctx, key, nativeURL); err != nil {
				return types.ShortURL{}, err
			}
			metrics.ShortURLGenerated()
			s.logger.Info("Short URL created",
				zap.String("key", key),
				zap.Int("attempts", attempts))
			return types.ShortURL{
				ShortURL:  s.distributionHost + "/" + key,
				NativeURL: nativeURL,
				Key:       key,
				CreatedAt: time.Now().UTC(),
			}, nil
		}

		metrics.KeyCollision()
		s.logger.Warn("Key collision, regenerating", zap.String("key", key))

		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			return types.ShortURL{}, ErrMaxAttemptsReached
		}
	}
}
