package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// InMemoryCarrierNameRepository is an in-memory implementation for testing
// and single-node deployments without a database.
type InMemoryCarrierNameRepository struct {
	mu       sync.RWMutex
	mappings map[string]*models.CarrierNameMapping // keyed by lowercased original name
	nextID   int64
}

// NewInMemoryCarrierNameRepository creates a new in-memory carrier name repository
func NewInMemoryCarrierNameRepository() ports.CarrierNameRepository {
	return &InMemoryCarrierNameRepository{
		mappings: make(map[string]*models.CarrierNameMapping),
		nextID:   1,
	}
}

func (r *InMemoryCarrierNameRepository) GetByOriginalName(ctx context.Context, originalName string) (*models.CarrierNameMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.mappings[strings.ToLower(originalName)]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, models.ErrMappingNotFound
}

func (r *InMemoryCarrierNameRepository) List(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.CarrierNameMapping, 0, len(r.mappings))
	for _, m := range r.mappings {
		copied := *m
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].OriginalName < all[j].OriginalName
	})

	if offset >= len(all) {
		return []*models.CarrierNameMapping{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *InMemoryCarrierNameRepository) Upsert(ctx context.Context, mapping *models.CarrierNameMapping) error {
	if err := models.ValidateCarrierNameMapping(mapping); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(mapping.OriginalName)
	stored := *mapping
	stored.UpdatedAt = time.Now().UTC()
	if existing, ok := r.mappings[key]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = r.nextID
		r.nextID++
	}
	r.mappings[key] = &stored
	mapping.ID = stored.ID
	mapping.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *InMemoryCarrierNameRepository) Delete(ctx context.Context, originalName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(originalName)
	if _, ok := r.mappings[key]; !ok {
		return models.ErrMappingNotFound
	}
	delete(r.mappings, key)
	return nil
}
