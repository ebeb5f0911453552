package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// Note: These tests cover structure, document mapping and offline behavior.
// Operations against a live MongoDB are exercised by deployment smoke tests.

func TestNewMongoDBAdapter(t *testing.T) {
	adapter := NewMongoDBAdapter(&ports.MongoDBConfig{
		URI:      "mongodb://localhost:27017",
		Database: "carrierd",
	})

	assert.NotNil(t, adapter)
	assert.Equal(t, ports.DatabaseTypeMongoDB, adapter.GetType())
	assert.Nil(t, adapter.GetCarrierNameRepository())
	assert.Nil(t, adapter.GetStatusHistoryRepository())
}

func TestMongoDBAdapter_PingNotConnected(t *testing.T) {
	adapter := NewMongoDBAdapter(&ports.MongoDBConfig{Database: "carrierd"})

	err := adapter.Ping(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestMongoDBAdapter_DisconnectNotConnected(t *testing.T) {
	adapter := NewMongoDBAdapter(&ports.MongoDBConfig{Database: "carrierd"})

	assert.NoError(t, adapter.Disconnect(context.Background()))
}

func TestMongoDBAdapter_ConnectionStatsNotConnected(t *testing.T) {
	adapter := NewMongoDBAdapter(&ports.MongoDBConfig{
		Database:    "carrierd",
		MaxPoolSize: 25,
	})

	stats := adapter.GetConnectionStats()
	assert.Equal(t, string(ports.DatabaseTypeMongoDB), stats.DatabaseType)
	assert.Equal(t, "carrierd", stats.ConnectionString)
	assert.Equal(t, 25, stats.MaxConnections)
	assert.False(t, stats.Healthy)
}

func TestCarrierNameDoc_ToModel(t *testing.T) {
	now := time.Now()
	doc := &carrierNameDoc{
		ID:           7,
		OriginalKey:  "acme mobile",
		OriginalName: "Acme Mobile",
		LocalName:    "Acme Mobil",
		UpdatedAt:    now,
	}

	m := doc.toModel()
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "Acme Mobile", m.OriginalName)
	assert.Equal(t, "Acme Mobil", m.LocalName)
	assert.Equal(t, now, m.UpdatedAt)
}

func TestStatusTransitionDoc_ToModel(t *testing.T) {
	now := time.Now()
	doc := &statusTransitionDoc{
		ID:             3,
		Text:           "Airplane mode",
		PreviousText:   "Acme Mobile",
		AllSimsMissing: false,
		InService:      false,
		AirplaneMode:   true,
		Trigger:        "airplane-mode",
		ResolvedAt:     now,
	}

	tr := doc.toModel()
	assert.Equal(t, int64(3), tr.ID)
	assert.Equal(t, "Airplane mode", tr.Text)
	assert.Equal(t, "Acme Mobile", tr.PreviousText)
	assert.True(t, tr.AirplaneMode)
	assert.Equal(t, "airplane-mode", tr.Trigger)
	assert.Equal(t, now, tr.ResolvedAt)
}

func TestCollectionNames(t *testing.T) {
	assert.Equal(t, "carrier_names", carrierNamesCollection)
	assert.Equal(t, "status_history", statusHistoryCollection)
}
