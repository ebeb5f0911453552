package ports

import (
	"context"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

// CarrierTextService defines the core operations of the carrier status
// domain. This is the primary port.
type CarrierTextService interface {
	// CurrentStatus returns the most recently resolved display status.
	CurrentStatus() models.DisplayStatus

	// Refresh pulls a fresh state snapshot from the providers, resolves it and
	// replaces the current display status. Recomputes are serialized; the
	// result fully replaces the previous text (last write wins).
	Refresh(ctx context.Context, trigger string) (models.DisplayStatus, error)

	// RequestRefresh schedules an asynchronous recompute. Pending requests
	// coalesce; calling it while a refresh is queued is a no-op.
	RequestRefresh(trigger string)

	// Start launches the background refresh loop. Stop drains it.
	Start(ctx context.Context)
	Stop()

	// Carrier name substitution table management.
	ListCarrierNames(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error)
	UpsertCarrierName(ctx context.Context, mapping *models.CarrierNameMapping) error
	DeleteCarrierName(ctx context.Context, originalName string) error

	// History retrieves recent display-text transitions, newest first.
	History(ctx context.Context, limit int) ([]*models.StatusTransition, error)
}
