package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// MongoDBAdapter implements the DatabaseAdapter interface for MongoDB
type MongoDBAdapter struct {
	client      *mongo.Client
	db          *mongo.Database
	config      *ports.MongoDBConfig
	nameRepo    ports.CarrierNameRepository
	historyRepo ports.StatusHistoryRepository
}

// NewMongoDBAdapter creates a new MongoDB database adapter
func NewMongoDBAdapter(config *ports.MongoDBConfig) *MongoDBAdapter {
	return &MongoDBAdapter{
		config: config,
	}
}

// Connect establishes a connection to the MongoDB database
func (a *MongoDBAdapter) Connect(ctx context.Context) error {
	clientOpts := options.Client().ApplyURI(a.config.URI)

	// Configure connection pool
	if a.config.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(a.config.MaxPoolSize))
	}
	if a.config.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(uint64(a.config.MinPoolSize))
	}
	if a.config.MaxConnIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(a.config.MaxConnIdleTime) * time.Second)
	}
	if a.config.ServerTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(time.Duration(a.config.ServerTimeout) * time.Second)
	}
	if a.config.SocketTimeout > 0 {
		clientOpts.SetSocketTimeout(time.Duration(a.config.SocketTimeout) * time.Second)
	}

	// Set read preference
	if a.config.ReadPreference != "" {
		switch a.config.ReadPreference {
		case "primary":
			clientOpts.SetReadPreference(readpref.Primary())
		case "secondary":
			clientOpts.SetReadPreference(readpref.Secondary())
		case "primaryPreferred":
			clientOpts.SetReadPreference(readpref.PrimaryPreferred())
		case "secondaryPreferred":
			clientOpts.SetReadPreference(readpref.SecondaryPreferred())
		}
	}

	// Set write concern
	if a.config.WriteConcern != "" {
		switch a.config.WriteConcern {
		case "majority":
			clientOpts.SetWriteConcern(writeconcern.Majority())
		}
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	a.client = client
	a.db = client.Database(a.config.Database)

	// Initialize repositories
	a.nameRepo = NewCarrierNameRepository(a.db)
	a.historyRepo = NewStatusHistoryRepository(a.db)

	// Create indexes
	if err = a.createIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// Disconnect closes the database connection
func (a *MongoDBAdapter) Disconnect(ctx context.Context) error {
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

// Ping checks if the database connection is alive
func (a *MongoDBAdapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return fmt.Errorf("database not connected")
	}
	return a.client.Ping(ctx, readpref.Primary())
}

// GetType returns the database type
func (a *MongoDBAdapter) GetType() ports.DatabaseType {
	return ports.DatabaseTypeMongoDB
}

// GetCarrierNameRepository returns the carrier name repository
func (a *MongoDBAdapter) GetCarrierNameRepository() ports.CarrierNameRepository {
	return a.nameRepo
}

// GetStatusHistoryRepository returns the status history repository
func (a *MongoDBAdapter) GetStatusHistoryRepository() ports.StatusHistoryRepository {
	return a.historyRepo
}

// HealthCheck performs a health check on the database
func (a *MongoDBAdapter) HealthCheck(ctx context.Context) error {
	if err := a.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	// Test a simple query
	_, err := a.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("health check query failed: %w", err)
	}

	return nil
}

// GetConnectionStats returns database connection statistics
func (a *MongoDBAdapter) GetConnectionStats() ports.ConnectionStats {
	healthy := a.Ping(context.Background()) == nil

	return ports.ConnectionStats{
		OpenConnections:  -1, // MongoDB driver doesn't expose this easily
		IdleConnections:  -1,
		MaxConnections:   a.config.MaxPoolSize,
		DatabaseType:     string(ports.DatabaseTypeMongoDB),
		ConnectionString: a.config.Database, // Don't expose full URI
		Healthy:          healthy,
	}
}

// createIndexes creates necessary indexes for optimal performance
func (a *MongoDBAdapter) createIndexes(ctx context.Context) error {
	// Carrier names collection indexes
	nameIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "original_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "original_name", Value: 1}},
		},
	}

	_, err := a.db.Collection(carrierNamesCollection).Indexes().CreateMany(ctx, nameIndexes)
	if err != nil {
		return fmt.Errorf("failed to create carrier name indexes: %w", err)
	}

	// Status history collection indexes
	historyIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "resolved_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "trigger", Value: 1}},
		},
	}

	_, err = a.db.Collection(statusHistoryCollection).Indexes().CreateMany(ctx, historyIndexes)
	if err != nil {
		return fmt.Errorf("failed to create status history indexes: %w", err)
	}

	return nil
}
