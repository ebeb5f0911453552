package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// statusHistoryRepository implements the StatusHistoryRepository interface using PostgreSQL
type statusHistoryRepository struct {
	db sqlx.ExtContext
}

// NewStatusHistoryRepository creates a new PostgreSQL status history repository
func NewStatusHistoryRepository(db sqlx.ExtContext) ports.StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Record appends one display-text transition
func (r *statusHistoryRepository) Record(ctx context.Context, transition *models.StatusTransition) error {
	query := `
		INSERT INTO status_history (
			text, previous_text, all_sims_missing, in_service, airplane_mode, trigger, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	row := r.db.QueryRowxContext(ctx, query,
		transition.Text,
		transition.PreviousText,
		transition.AllSimsMissing,
		transition.InService,
		transition.AirplaneMode,
		transition.Trigger,
		transition.ResolvedAt,
	)
	if err := row.Scan(&transition.ID); err != nil {
		return fmt.Errorf("failed to record status transition: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent transitions, newest first
func (r *statusHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.StatusTransition, error) {
	query := `
		SELECT id, text, previous_text, all_sims_missing, in_service, airplane_mode, trigger, resolved_at
		FROM status_history
		ORDER BY resolved_at DESC, id DESC
		LIMIT $1
	`

	transitions := make([]*models.StatusTransition, 0)
	err := sqlx.SelectContext(ctx, r.db, &transitions, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status transitions: %w", err)
	}

	return transitions, nil
}
