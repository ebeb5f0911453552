package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// Note: These tests cover construction, key derivation and offline error
// behavior. Operations against a live Redis are exercised by deployment
// smoke tests.

func TestNew(t *testing.T) {
	cache := New(&ports.RedisConfig{
		Host: "localhost",
		Port: 6379,
	})

	assert.NotNil(t, cache)
	assert.NoError(t, cache.Close())
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Mobile", "carrierd:name:acme mobile"},
		{"ACME", "carrierd:name:acme"},
		{"", "carrierd:name:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cacheKey(tt.name))
		})
	}
}

func TestCache_UnreachableServer(t *testing.T) {
	// Port 1 is never a Redis server; every operation fails fast with a
	// connection error rather than a not-found.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	cache := NewWithClient(client)
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.Error(t, cache.Ping(ctx))

	_, err := cache.Get(ctx, "Acme")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrMappingNotFound)

	err = cache.Set(ctx, "Acme", &models.CarrierNameMapping{
		OriginalName: "Acme",
		LocalName:    "Acme Local",
	}, 60)
	assert.Error(t, err)

	assert.Error(t, cache.Delete(ctx, "Acme"))
}
