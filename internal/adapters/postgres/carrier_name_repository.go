package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// carrierNameRepository implements the CarrierNameRepository interface using PostgreSQL
type carrierNameRepository struct {
	db sqlx.ExtContext
}

// NewCarrierNameRepository creates a new PostgreSQL carrier name repository
func NewCarrierNameRepository(db sqlx.ExtContext) ports.CarrierNameRepository {
	return &carrierNameRepository{db: db}
}

// GetByOriginalName looks up a mapping by original name, case-insensitively
func (r *carrierNameRepository) GetByOriginalName(ctx context.Context, originalName string) (*models.CarrierNameMapping, error) {
	query := `
		SELECT id, original_name, local_name, updated_at
		FROM carrier_names
		WHERE LOWER(original_name) = LOWER($1)
	`

	var mapping models.CarrierNameMapping
	err := sqlx.GetContext(ctx, r.db, &mapping, query, originalName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrMappingNotFound
		}
		return nil, fmt.Errorf("failed to get carrier name mapping: %w", err)
	}

	return &mapping, nil
}

// List retrieves mappings with pagination, ordered by original name
func (r *carrierNameRepository) List(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error) {
	query := `
		SELECT id, original_name, local_name, updated_at
		FROM carrier_names
		ORDER BY original_name
		LIMIT $1 OFFSET $2
	`

	mappings := make([]*models.CarrierNameMapping, 0)
	err := sqlx.SelectContext(ctx, r.db, &mappings, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list carrier name mappings: %w", err)
	}

	return mappings, nil
}

// Upsert inserts a mapping or replaces the local name of an existing one
func (r *carrierNameRepository) Upsert(ctx context.Context, mapping *models.CarrierNameMapping) error {
	query := `
		INSERT INTO carrier_names (original_name, local_name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (original_name)
		DO UPDATE SET local_name = EXCLUDED.local_name, updated_at = NOW()
		RETURNING id
	`

	row := r.db.QueryRowxContext(ctx, query, mapping.OriginalName, mapping.LocalName)
	if err := row.Scan(&mapping.ID); err != nil {
		return fmt.Errorf("failed to upsert carrier name mapping: %w", err)
	}

	return nil
}

// Delete removes a mapping by original name
func (r *carrierNameRepository) Delete(ctx context.Context, originalName string) error {
	query := `DELETE FROM carrier_names WHERE LOWER(original_name) = LOWER($1)`

	result, err := r.db.ExecContext(ctx, query, originalName)
	if err != nil {
		return fmt.Errorf("failed to delete carrier name mapping: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrMappingNotFound
	}

	return nil
}
