package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const carrierNamesCollection = "carrier_names"

// carrierNameDoc is the stored shape of a carrier name mapping. The
// original_key field carries the lowercased original name so lookups
// stay case-insensitive without a collation-aware index.
type carrierNameDoc struct {
	ID           int64     `bson:"id"`
	OriginalKey  string    `bson:"original_key"`
	OriginalName string    `bson:"original_name"`
	LocalName    string    `bson:"local_name"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d *carrierNameDoc) toModel() *models.CarrierNameMapping {
	return &models.CarrierNameMapping{
		ID:           d.ID,
		OriginalName: d.OriginalName,
		LocalName:    d.LocalName,
		UpdatedAt:    d.UpdatedAt,
	}
}

// carrierNameRepository implements the CarrierNameRepository interface using MongoDB
type carrierNameRepository struct {
	collection *mongo.Collection
}

// NewCarrierNameRepository creates a new MongoDB carrier name repository
func NewCarrierNameRepository(db *mongo.Database) ports.CarrierNameRepository {
	return &carrierNameRepository{
		collection: db.Collection(carrierNamesCollection),
	}
}

// GetByOriginalName looks up a mapping by original name, case-insensitively
func (r *carrierNameRepository) GetByOriginalName(ctx context.Context, originalName string) (*models.CarrierNameMapping, error) {
	var doc carrierNameDoc

	key := strings.ToLower(originalName)
	err := r.collection.FindOne(ctx, bson.M{"original_key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrMappingNotFound
		}
		return nil, fmt.Errorf("failed to get carrier name mapping: %w", err)
	}

	return doc.toModel(), nil
}

// List retrieves mappings with pagination, ordered by original name
func (r *carrierNameRepository) List(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "original_name", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list carrier name mappings: %w", err)
	}
	defer cursor.Close(ctx)

	mappings := make([]*models.CarrierNameMapping, 0)
	for cursor.Next(ctx) {
		var doc carrierNameDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode carrier name mapping: %w", err)
		}
		mappings = append(mappings, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return mappings, nil
}

// Upsert inserts a mapping or replaces the local name of an existing one
func (r *carrierNameRepository) Upsert(ctx context.Context, mapping *models.CarrierNameMapping) error {
	mapping.UpdatedAt = time.Now()
	if mapping.ID == 0 {
		mapping.ID = mapping.UpdatedAt.UnixNano()
	}

	key := strings.ToLower(mapping.OriginalName)
	update := bson.M{
		"$set": bson.M{
			"original_name": mapping.OriginalName,
			"local_name":    mapping.LocalName,
			"updated_at":    mapping.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id": mapping.ID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"original_key": key}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert carrier name mapping: %w", err)
	}

	return nil
}

// Delete removes a mapping by original name
func (r *carrierNameRepository) Delete(ctx context.Context, originalName string) error {
	key := strings.ToLower(originalName)
	result, err := r.collection.DeleteOne(ctx, bson.M{"original_key": key})
	if err != nil {
		return fmt.Errorf("failed to delete carrier name mapping: %w", err)
	}

	if result.DeletedCount == 0 {
		return models.ErrMappingNotFound
	}

	return nil
}
