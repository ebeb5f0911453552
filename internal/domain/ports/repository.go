package ports

import (
	"context"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

// CarrierNameRepository defines data access for the carrier name
// substitution table. This is a port owned by the domain layer.
type CarrierNameRepository interface {
	// GetByOriginalName looks up a mapping by original name, case-insensitively.
	GetByOriginalName(ctx context.Context, originalName string) (*models.CarrierNameMapping, error)

	// List retrieves mappings with pagination, ordered by original name.
	List(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error)

	// Upsert inserts a mapping or replaces the local name of an existing one.
	Upsert(ctx context.Context, mapping *models.CarrierNameMapping) error

	// Delete removes a mapping by original name.
	Delete(ctx context.Context, originalName string) error
}

// StatusHistoryRepository records display-text transitions for auditing.
type StatusHistoryRepository interface {
	// Record appends one transition.
	Record(ctx context.Context, transition *models.StatusTransition) error

	// ListRecent retrieves the most recent transitions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*models.StatusTransition, error)
}

// CacheRepository defines the interface for caching carrier name lookups
// (optional).
type CacheRepository interface {
	// Get retrieves a mapping from cache.
	Get(ctx context.Context, originalName string) (*models.CarrierNameMapping, error)

	// Set stores a mapping in cache.
	Set(ctx context.Context, originalName string, mapping *models.CarrierNameMapping, ttlSeconds int) error

	// Delete removes a mapping from cache.
	Delete(ctx context.Context, originalName string) error
}
