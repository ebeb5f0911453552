package service

import (
	"context"
	"errors"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
)

const localizerLookupTimeout = 500 * time.Millisecond

// carrierNameLocalizer adapts the carrier name repository (plus the optional
// cache in front of it) to the resolver's Localizer port. Lookup failures
// degrade to "no mapping" so a storage hiccup never blanks the carrier text.
type carrierNameLocalizer struct {
	repo       ports.CarrierNameRepository
	cache      ports.CacheRepository
	ttlSeconds int
	logger     logger.Logger
}

func newCarrierNameLocalizer(repo ports.CarrierNameRepository, cache ports.CacheRepository, ttlSeconds int, log logger.Logger) *carrierNameLocalizer {
	return &carrierNameLocalizer{
		repo:       repo,
		cache:      cache,
		ttlSeconds: ttlSeconds,
		logger:     log,
	}
}

func (l *carrierNameLocalizer) LocalName(original string) (string, bool) {
	if original == "" || l.repo == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), localizerLookupTimeout)
	defer cancel()

	if l.cache != nil {
		if m, err := l.cache.Get(ctx, original); err == nil && m != nil {
			logger.CacheHitTotal.WithLabelValues("hit").Inc()
			return m.LocalName, true
		}
		logger.CacheHitTotal.WithLabelValues("miss").Inc()
	}

	m, err := l.repo.GetByOriginalName(ctx, original)
	if err != nil {
		if !errors.Is(err, models.ErrMappingNotFound) {
			l.logger.Debugw("Carrier name lookup failed", "original_name", original, "error", err)
		}
		return "", false
	}

	if l.cache != nil {
		// Populate asynchronously; a slow cache must not delay the recompute.
		go func() {
			cacheCtx, cacheCancel := context.WithTimeout(context.Background(), localizerLookupTimeout)
			defer cacheCancel()
			_ = l.cache.Set(cacheCtx, original, m, l.ttlSeconds)
		}()
	}

	return m.LocalName, true
}
