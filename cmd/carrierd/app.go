package main

import (
	"context"
	"fmt"

	"github.com/xlxfoxxlx/carrierd/internal/adapters/factory"
	httpAdapter "github.com/xlxfoxxlx/carrierd/internal/adapters/http"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/memory"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/nsqevents"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/rediscache"
	"github.com/xlxfoxxlx/carrierd/internal/catalog"
	"github.com/xlxfoxxlx/carrierd/internal/config"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/domain/resolver"
	"github.com/xlxfoxxlx/carrierd/internal/domain/service"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
	"github.com/xlxfoxxlx/carrierd/internal/presentation"
)

// Application holds the application state
type Application struct {
	cfg         *config.Config
	logger      logger.Logger
	service     ports.CarrierTextService
	hub         *memory.TelephonyStateHub
	dbAdapter   ports.DatabaseAdapter
	cache       *rediscache.Cache
	httpServer  *httpAdapter.Server
	nsqConsumer *nsqevents.Consumer
}

// buildCatalog builds the string catalog from configuration. Empty override
// fields keep the built-in templates.
func buildCatalog(cfg *config.Config) *catalog.Catalog {
	overrides := make(map[models.MessageKind]string)
	add := func(kind models.MessageKind, value string) {
		if value != "" {
			overrides[kind] = value
		}
	}

	add(models.MsgMissingSim, cfg.Messages.MissingSim)
	add(models.MsgEmergencyCallsOnly, cfg.Messages.EmergencyCallsOnly)
	add(models.MsgNetworkLocked, cfg.Messages.NetworkLocked)
	add(models.MsgSimLocked, cfg.Messages.SimLocked)
	add(models.MsgSimPukLocked, cfg.Messages.SimPukLocked)
	add(models.MsgSimPermDisabled, cfg.Messages.SimPermDisabled)
	add(models.MsgSimError, cfg.Messages.SimError)
	add(models.MsgAirplaneMode, cfg.Messages.AirplaneMode)
	add(models.MsgNetworkClass2G, cfg.Messages.NetworkClass2G)
	add(models.MsgNetworkClass3G, cfg.Messages.NetworkClass3G)
	add(models.MsgNetworkClass4G, cfg.Messages.NetworkClass4G)
	add(models.MsgNetworkClass5G, cfg.Messages.NetworkClass5G)

	return catalog.New(cfg.Messages.Separator, overrides)
}

// initializeRepositories sets up the carrier name and status history
// repositories for the configured backend. The returned adapter is nil for
// the in-memory backend.
func initializeRepositories(ctx context.Context, cfg *config.Config, log logger.Logger) (ports.CarrierNameRepository, ports.StatusHistoryRepository, ports.DatabaseAdapter, error) {
	switch cfg.Database.Type {
	case "memory":
		log.Info("✓ In-memory repositories initialized")
		return memory.NewInMemoryCarrierNameRepository(), memory.NewInMemoryStatusHistoryRepository(), nil, nil

	case "postgres":
		dbConfig := &ports.DatabaseConfig{
			Type: ports.DatabaseTypePostgreSQL,
			PostgresConfig: &ports.PostgresConfig{
				Host:            cfg.Database.Postgres.Host,
				Port:            cfg.Database.Postgres.Port,
				User:            cfg.Database.Postgres.User,
				Password:        cfg.Database.Postgres.Password,
				Database:        cfg.Database.Postgres.Database,
				SSLMode:         cfg.Database.Postgres.SSLMode,
				MaxOpenConns:    cfg.Database.Postgres.MaxOpenConns,
				MaxIdleConns:    cfg.Database.Postgres.MaxIdleConns,
				ConnMaxLifetime: int(cfg.Database.Postgres.ConnMaxLifetime.Seconds()),
				ConnMaxIdleTime: int(cfg.Database.Postgres.ConnMaxIdleTime.Seconds()),
			},
		}
		return connectAdapter(ctx, dbConfig, log)

	case "mongodb":
		dbConfig := &ports.DatabaseConfig{
			Type: ports.DatabaseTypeMongoDB,
			MongoDBConfig: &ports.MongoDBConfig{
				URI:            cfg.Database.MongoDB.URI,
				Database:       cfg.Database.MongoDB.Database,
				MaxPoolSize:    cfg.Database.MongoDB.MaxPoolSize,
				MinPoolSize:    cfg.Database.MongoDB.MinPoolSize,
				ServerTimeout:  int(cfg.Database.MongoDB.ServerTimeout.Seconds()),
				SocketTimeout:  int(cfg.Database.MongoDB.SocketTimeout.Seconds()),
				ReadPreference: cfg.Database.MongoDB.ReadPreference,
				WriteConcern:   cfg.Database.MongoDB.WriteConcern,
			},
		}
		return connectAdapter(ctx, dbConfig, log)

	default:
		return nil, nil, nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

func connectAdapter(ctx context.Context, dbConfig *ports.DatabaseConfig, log logger.Logger) (ports.CarrierNameRepository, ports.StatusHistoryRepository, ports.DatabaseAdapter, error) {
	adapterFactory := factory.NewDatabaseAdapterFactory()
	if err := adapterFactory.ValidateConfig(dbConfig); err != nil {
		return nil, nil, nil, err
	}

	adapter, err := adapterFactory.CreateAndConnectAdapter(ctx, dbConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Infow("✓ Database connected", "type", adapter.GetType())
	return adapter.GetCarrierNameRepository(), adapter.GetStatusHistoryRepository(), adapter, nil
}

// initializeCache sets up the optional Redis cache
func initializeCache(ctx context.Context, cfg *config.Config, log logger.Logger) *rediscache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	cache := rediscache.New(&ports.RedisConfig{
		Host:     cfg.Cache.Redis.Host,
		Port:     cfg.Cache.Redis.Port,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	if err := cache.Ping(ctx); err != nil {
		log.Warnw("Redis unreachable, continuing without cache", "error", err)
		_ = cache.Close()
		return nil
	}

	log.Infow("✓ Redis cache connected", "host", cfg.Cache.Redis.Host, "port", cfg.Cache.Redis.Port)
	return cache
}

// initializeService wires the resolver, catalog and presentation layers
// into the carrier text service
func initializeService(cfg *config.Config, hub *memory.TelephonyStateHub, nameRepo ports.CarrierNameRepository, historyRepo ports.StatusHistoryRepository, cache *rediscache.Cache, log logger.Logger) (ports.CarrierTextService, error) {
	transform, err := presentation.New(presentation.Config{
		AllCaps: cfg.Presentation.AllCaps,
		Locale:  cfg.Presentation.Locale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build presentation transformer: %w", err)
	}

	var cacheRepo ports.CacheRepository
	if cache != nil {
		cacheRepo = cache
	}

	svc := service.NewCarrierTextService(
		resolver.Config{
			ShowMissingSim:       cfg.Resolver.ShowMissingSim,
			ShowAirplaneMode:     cfg.Resolver.ShowAirplaneMode,
			ShowLocale:           cfg.Resolver.ShowLocale,
			ShowNetworkClass:     cfg.Resolver.ShowNetworkClass,
			EmergencyCallCapable: cfg.Resolver.EmergencyCallCapable,
			SlotCount:            cfg.Resolver.SlotCount,
		},
		buildCatalog(cfg),
		hub.Providers(),
		nameRepo,
		historyRepo,
		cacheRepo,
		cfg.Cache.TTLSeconds,
		transform,
	)

	log.Info("✓ Carrier text service initialized")
	return svc, nil
}

// initializeHTTPServer configures and starts the HTTP/2 server
func initializeHTTPServer(cfg *config.Config, svc ports.CarrierTextService, hub *memory.TelephonyStateHub, log logger.Logger) (*httpAdapter.Server, error) {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	httpServerConfig := httpAdapter.ServerConfig{
		ListenAddr:   fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		EnableH2C:    true, // Enable HTTP/2 Cleartext for testing
		MetricsPath:  metricsPath,
	}

	httpServer := httpAdapter.NewServer(httpServerConfig, svc, hub)

	if err := httpServer.Start(); err != nil {
		return nil, err
	}

	log.Infow("✓ HTTP/2 server listening", "address", httpServer.GetAddr())
	return httpServer, nil
}

// initializeEventConsumer starts the NSQ telephony event consumer when
// events are enabled
func initializeEventConsumer(cfg *config.Config, hub *memory.TelephonyStateHub, svc ports.CarrierTextService, log logger.Logger) (*nsqevents.Consumer, error) {
	if !cfg.Events.Enabled {
		log.Info("Telephony event consumer disabled")
		return nil, nil
	}

	consumer, err := nsqevents.NewConsumer(nsqevents.Config{
		Topic:            cfg.Events.NSQ.Topic,
		Channel:          cfg.Events.NSQ.Channel,
		NsqdAddresses:    cfg.Events.NSQ.NsqdAddresses,
		LookupdAddresses: cfg.Events.NSQ.LookupdAddresses,
		MaxInFlight:      cfg.Events.NSQ.MaxInFlight,
		Concurrency:      cfg.Events.NSQ.Concurrency,
	}, hub, svc)
	if err != nil {
		return nil, err
	}

	if err := consumer.Start(); err != nil {
		return nil, err
	}

	log.Infow("✓ Telephony event consumer started", "topic", cfg.Events.NSQ.Topic, "channel", cfg.Events.NSQ.Channel)
	return consumer, nil
}

// shutdown performs graceful shutdown of all services
func (app *Application) shutdown() {
	app.logger.Info("Shutting down...")

	if app.nsqConsumer != nil {
		app.nsqConsumer.Stop()
	}

	if err := app.httpServer.Stop(); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
	}

	app.service.Stop()

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Warnw("Redis close error", "error", err)
		}
	}

	if app.dbAdapter != nil {
		if err := app.dbAdapter.Disconnect(context.Background()); err != nil {
			app.logger.Errorw("Database disconnect error", "error", err)
		}
	}

	app.logger.Info("Stopped gracefully")
}
