package memory

import (
	"context"
	"sync"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// defaultHistoryCapacity bounds the in-memory transition log; the oldest
// entries are discarded once it is exceeded.
const defaultHistoryCapacity = 1000

// InMemoryStatusHistoryRepository is an in-memory implementation for testing
// and database-less deployments.
type InMemoryStatusHistoryRepository struct {
	mu          sync.RWMutex
	transitions []*models.StatusTransition
	nextID      int64
	capacity    int
}

// NewInMemoryStatusHistoryRepository creates a new in-memory history repository
func NewInMemoryStatusHistoryRepository() ports.StatusHistoryRepository {
	return &InMemoryStatusHistoryRepository{
		nextID:   1,
		capacity: defaultHistoryCapacity,
	}
}

func (r *InMemoryStatusHistoryRepository) Record(ctx context.Context, transition *models.StatusTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *transition
	stored.ID = r.nextID
	r.nextID++
	r.transitions = append(r.transitions, &stored)
	if len(r.transitions) > r.capacity {
		r.transitions = r.transitions[len(r.transitions)-r.capacity:]
	}
	transition.ID = stored.ID
	return nil
}

func (r *InMemoryStatusHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.StatusTransition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.transitions) {
		limit = len(r.transitions)
	}
	result := make([]*models.StatusTransition, 0, limit)
	for i := len(r.transitions) - 1; i >= 0 && len(result) < limit; i-- {
		copied := *r.transitions[i]
		result = append(result, &copied)
	}
	return result, nil
}
