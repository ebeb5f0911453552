package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlxfoxxlx/carrierd/internal/adapters/memory"
	"github.com/xlxfoxxlx/carrierd/internal/catalog"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/domain/resolver"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
	"github.com/xlxfoxxlx/carrierd/internal/presentation"
)

func testLogger() logger.Logger {
	return logger.New("test", "error")
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*models.CarrierNameMapping
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.CarrierNameMapping)}
}

func (c *fakeCache) Get(ctx context.Context, originalName string) (*models.CarrierNameMapping, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.entries[originalName]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, models.ErrMappingNotFound
}

func (c *fakeCache) Set(ctx context.Context, originalName string, mapping *models.CarrierNameMapping, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *mapping
	c.entries[originalName] = &copied
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, originalName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, originalName)
	c.deletes = append(c.deletes, originalName)
	return nil
}

func (c *fakeCache) deleted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.deletes))
	copy(out, c.deletes)
	return out
}

type testEnv struct {
	hub     *memory.TelephonyStateHub
	names   ports.CarrierNameRepository
	history ports.StatusHistoryRepository
	cache   *fakeCache
	service ports.CarrierTextService
}

func newTestEnv(t *testing.T, cfg resolver.Config, transform Transformer) *testEnv {
	t.Helper()
	hub := memory.NewTelephonyStateHub()
	names := memory.NewInMemoryCarrierNameRepository()
	history := memory.NewInMemoryStatusHistoryRepository()
	cache := newFakeCache()
	svc := NewCarrierTextService(cfg, catalog.Default(), hub.Providers(), names, history, cache, 60, transform)
	return &testEnv{hub: hub, names: names, history: history, cache: cache, service: svc}
}

func defaultResolverConfig() resolver.Config {
	return resolver.Config{
		ShowMissingSim:       true,
		ShowAirplaneMode:     true,
		ShowLocale:           true,
		EmergencyCallCapable: true,
		SlotCount:            2,
	}
}

func TestRefresh_EmptyHub(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)

	status, err := env.service.Refresh(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "No SIM card | Emergency calls only", status.Text)
	assert.True(t, status.AllSimsMissing)
	assert.False(t, status.AnySimReadyAndInService)
	assert.False(t, status.ResolvedAt.IsZero())

	assert.Equal(t, status, env.service.CurrentStatus())
}

func TestRefresh_ReadySubscription(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)

	env.hub.SetSubscriptions([]models.Subscription{
		{SubscriptionID: 1, SlotIndex: 0, CarrierName: "Acme Mobile"},
	})
	env.hub.SetSimState(1, models.SimStateReady)
	env.hub.SetServiceState(1, models.ServiceState{
		DataInService: true,
		DataRadioTech: models.RadioTechLTE,
	})

	status, err := env.service.Refresh(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "Acme Mobile", status.Text)
	assert.True(t, status.AnySimReadyAndInService)
	assert.False(t, status.AllSimsMissing)
}

func TestRefresh_AppliesTransform(t *testing.T) {
	tr, err := presentation.New(presentation.Config{AllCaps: true})
	require.NoError(t, err)
	env := newTestEnv(t, defaultResolverConfig(), tr)

	env.hub.SetSubscriptions([]models.Subscription{
		{SubscriptionID: 1, SlotIndex: 0, CarrierName: "Acme Mobile"},
	})
	env.hub.SetSimState(1, models.SimStateReady)

	status, err := env.service.Refresh(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "ACME MOBILE", status.Text)
	assert.Equal(t, "Acme Mobile", status.RawText)
}

func TestRefresh_UsesCarrierNameSubstitution(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	require.NoError(t, env.names.Upsert(ctx, &models.CarrierNameMapping{
		OriginalName: "Acme Mobile",
		LocalName:    "Acme Mobil",
	}))

	env.hub.SetSubscriptions([]models.Subscription{
		{SubscriptionID: 1, SlotIndex: 0, CarrierName: "Acme Mobile"},
	})
	env.hub.SetSimState(1, models.SimStateReady)

	status, err := env.service.Refresh(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, "Acme Mobil", status.Text)
}

func TestRefresh_AirplaneModePropagates(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)

	env.hub.SetAirplaneMode(true)
	status, err := env.service.Refresh(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "Airplane mode", status.Text)
	assert.True(t, status.AirplaneMode)
}

func TestRefresh_RecordsTransitions(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	_, err := env.service.Refresh(ctx, "first")
	require.NoError(t, err)

	env.hub.SetAirplaneMode(true)
	_, err = env.service.Refresh(ctx, "second")
	require.NoError(t, err)

	// Identical text does not produce another transition.
	_, err = env.service.Refresh(ctx, "third")
	require.NoError(t, err)

	transitions, err := env.history.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	assert.Equal(t, "Airplane mode", transitions[0].Text)
	assert.Equal(t, "No SIM card | Emergency calls only", transitions[0].PreviousText)
	assert.Equal(t, "second", transitions[0].Trigger)
	assert.Equal(t, "first", transitions[1].Trigger)
	assert.Equal(t, "", transitions[1].PreviousText)
}

func TestStartAndRequestRefresh(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env.service.Start(ctx)
	defer env.service.Stop()

	require.Eventually(t, func() bool {
		return env.service.CurrentStatus().Text == "No SIM card | Emergency calls only"
	}, 2*time.Second, 10*time.Millisecond)

	env.hub.SetAirplaneMode(true)
	env.service.RequestRefresh("airplane")
	require.Eventually(t, func() bool {
		return env.service.CurrentStatus().Text == "Airplane mode"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStop_BeforeStartIsNoop(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	env.service.Stop()
}

func TestUpsertCarrierName(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	mapping := &models.CarrierNameMapping{OriginalName: "Acme Mobile", LocalName: "Acme Mobil"}
	require.NoError(t, env.service.UpsertCarrierName(ctx, mapping))
	assert.NotZero(t, mapping.ID)

	// The cache entry for the name is invalidated.
	assert.Contains(t, env.cache.deleted(), "Acme Mobile")

	got, err := env.names.GetByOriginalName(ctx, "acme mobile")
	require.NoError(t, err)
	assert.Equal(t, "Acme Mobil", got.LocalName)
}

func TestUpsertCarrierName_Invalid(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	err := env.service.UpsertCarrierName(ctx, &models.CarrierNameMapping{LocalName: "x"})
	assert.ErrorIs(t, err, models.ErrEmptyOriginalName)

	err = env.service.UpsertCarrierName(ctx, &models.CarrierNameMapping{OriginalName: "x"})
	assert.ErrorIs(t, err, models.ErrEmptyLocalName)
}

func TestDeleteCarrierName(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	require.NoError(t, env.service.UpsertCarrierName(ctx, &models.CarrierNameMapping{
		OriginalName: "Acme",
		LocalName:    "Acme Local",
	}))
	require.NoError(t, env.service.DeleteCarrierName(ctx, "Acme"))

	_, err := env.names.GetByOriginalName(ctx, "Acme")
	assert.ErrorIs(t, err, models.ErrMappingNotFound)

	assert.ErrorIs(t, env.service.DeleteCarrierName(ctx, "Acme"), models.ErrMappingNotFound)
}

func TestListCarrierNames_DefaultsLimit(t *testing.T) {
	env := newTestEnv(t, defaultResolverConfig(), nil)
	ctx := context.Background()

	require.NoError(t, env.service.UpsertCarrierName(ctx, &models.CarrierNameMapping{
		OriginalName: "Acme",
		LocalName:    "Acme Local",
	}))

	mappings, err := env.service.ListCarrierNames(ctx, -1, 0)
	require.NoError(t, err)
	assert.Len(t, mappings, 1)
}

func TestHistory_NilRepository(t *testing.T) {
	hub := memory.NewTelephonyStateHub()
	svc := NewCarrierTextService(defaultResolverConfig(), catalog.Default(), hub.Providers(),
		memory.NewInMemoryCarrierNameRepository(), nil, nil, 0, nil)

	transitions, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, transitions)
}

func TestLocalizer_CacheHitSkipsRepository(t *testing.T) {
	cache := newFakeCache()
	require.NoError(t, cache.Set(context.Background(), "Acme",
		&models.CarrierNameMapping{OriginalName: "Acme", LocalName: "Cached"}, 60))

	loc := newCarrierNameLocalizer(memory.NewInMemoryCarrierNameRepository(), cache, 60, testLogger())

	local, ok := loc.LocalName("Acme")
	assert.True(t, ok)
	assert.Equal(t, "Cached", local)
}

func TestLocalizer_MissDegradesToNoMapping(t *testing.T) {
	loc := newCarrierNameLocalizer(memory.NewInMemoryCarrierNameRepository(), nil, 0, testLogger())

	_, ok := loc.LocalName("unmapped")
	assert.False(t, ok)

	_, ok = loc.LocalName("")
	assert.False(t, ok)
}

func TestLocalizer_PopulatesCacheAfterMiss(t *testing.T) {
	repo := memory.NewInMemoryCarrierNameRepository()
	require.NoError(t, repo.Upsert(context.Background(), &models.CarrierNameMapping{
		OriginalName: "Acme",
		LocalName:    "Acme Local",
	}))
	cache := newFakeCache()
	loc := newCarrierNameLocalizer(repo, cache, 60, testLogger())

	local, ok := loc.LocalName("Acme")
	require.True(t, ok)
	assert.Equal(t, "Acme Local", local)

	// The cache populate runs in the background.
	assert.Eventually(t, func() bool {
		m, err := cache.Get(context.Background(), "Acme")
		return err == nil && m.LocalName == "Acme Local"
	}, 2*time.Second, 10*time.Millisecond)
}
