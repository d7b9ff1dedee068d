package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverCache serves from the primary cache until it errors, then switches
// to the fallback and probes the primary again after a minute.
type FailoverCache struct {
	primary  domain.Cache
	fallback domain.Cache
	logger   *zerolog.Logger
	isDown   atomic.Bool
	// unix timestamp of the last failed primary probe
	lastCheck atomic.Int64
}

func NewFailoverCache(primary, fallback domain.Cache, logger *zerolog.Logger) *FailoverCache {
	return &FailoverCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FailoverCache) markDown(err error) {
	f.logger.Error().Err(err).Msg("Primary cache failed, falling back to memory")
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().Unix())
}

func (f *FailoverCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !f.isDown.Load() {
		value, found, err := f.primary.Get(ctx, key)
		if err == nil {
			return value, found, nil
		}
		f.markDown(err)
	}

	// Try to recover after 1 minute
	if f.isDown.Load() && time.Now().Unix()-f.lastCheck.Load() > 60 {
		value, found, err := f.primary.Get(ctx, key)
		if err == nil {
			f.isDown.Store(false)
			return value, found, nil
		}
		f.lastCheck.Store(time.Now().Unix())
	}

	return f.fallback.Get(ctx, key)
}

func (f *FailoverCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !f.isDown.Load() {
		err := f.primary.Set(ctx, key, value, ttl)
		if err == nil {
			return nil
		}
		f.markDown(err)
	}

	return f.fallback.Set(ctx, key, value, ttl)
}

func (f *FailoverCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	if !f.isDown.Load() {
		err := f.primary.DeleteByPrefix(ctx, prefix)
		if err == nil {
			// Keep the fallback coherent for entries written while degraded.
			return f.fallback.DeleteByPrefix(ctx, prefix)
		}
		f.markDown(err)
	}

	return f.fallback.DeleteByPrefix(ctx, prefix)
}
