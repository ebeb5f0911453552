package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statusHistoryCollection = "status_history"

// statusTransitionDoc is the stored shape of a display-text transition
type statusTransitionDoc struct {
	ID             int64     `bson:"id"`
	Text           string    `bson:"text"`
	PreviousText   string    `bson:"previous_text"`
	AllSimsMissing bool      `bson:"all_sims_missing"`
	InService      bool      `bson:"in_service"`
	AirplaneMode   bool      `bson:"airplane_mode"`
	Trigger        string    `bson:"trigger"`
	ResolvedAt     time.Time `bson:"resolved_at"`
}

func (d *statusTransitionDoc) toModel() *models.StatusTransition {
	return &models.StatusTransition{
		ID:             d.ID,
		Text:           d.Text,
		PreviousText:   d.PreviousText,
		AllSimsMissing: d.AllSimsMissing,
		InService:      d.InService,
		AirplaneMode:   d.AirplaneMode,
		Trigger:        d.Trigger,
		ResolvedAt:     d.ResolvedAt,
	}
}

// statusHistoryRepository implements the StatusHistoryRepository interface using MongoDB
type statusHistoryRepository struct {
	collection *mongo.Collection
}

// NewStatusHistoryRepository creates a new MongoDB status history repository
func NewStatusHistoryRepository(db *mongo.Database) ports.StatusHistoryRepository {
	return &statusHistoryRepository{
		collection: db.Collection(statusHistoryCollection),
	}
}

// Record appends one display-text transition
func (r *statusHistoryRepository) Record(ctx context.Context, transition *models.StatusTransition) error {
	if transition.ID == 0 {
		transition.ID = time.Now().UnixNano()
	}

	doc := statusTransitionDoc{
		ID:             transition.ID,
		Text:           transition.Text,
		PreviousText:   transition.PreviousText,
		AllSimsMissing: transition.AllSimsMissing,
		InService:      transition.InService,
		AirplaneMode:   transition.AirplaneMode,
		Trigger:        transition.Trigger,
		ResolvedAt:     transition.ResolvedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to record status transition: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent transitions, newest first
func (r *statusHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*models.StatusTransition, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "resolved_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list status transitions: %w", err)
	}
	defer cursor.Close(ctx)

	transitions := make([]*models.StatusTransition, 0)
	for cursor.Next(ctx) {
		var doc statusTransitionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode status transition: %w", err)
		}
		transitions = append(transitions, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return transitions, nil
}
