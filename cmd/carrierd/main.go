package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	envconfig "github.com/xlxfoxxlx/carrierd/config"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/memory"
	"github.com/xlxfoxxlx/carrierd/internal/config"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
)

func main() {
	log := logger.New("carrierd-main", "info")

	// Load .env before viper reads the environment
	envconfig.LoadEnv()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}

	logger.SetLevel(cfg.Logging.Level)
	logger.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nameRepo, historyRepo, dbAdapter, err := initializeRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalw("Failed to initialize repositories", "error", err)
	}

	cache := initializeCache(ctx, cfg, log)

	hub := memory.NewTelephonyStateHub()

	svc, err := initializeService(cfg, hub, nameRepo, historyRepo, cache, log)
	if err != nil {
		log.Fatalw("Failed to initialize carrier text service", "error", err)
	}

	svc.Start(ctx)

	httpServer, err := initializeHTTPServer(cfg, svc, hub, log)
	if err != nil {
		log.Fatalw("Failed to start HTTP server", "error", err)
	}

	nsqConsumer, err := initializeEventConsumer(cfg, hub, svc, log)
	if err != nil {
		log.Fatalw("Failed to start telephony event consumer", "error", err)
	}

	app := &Application{
		cfg:         cfg,
		logger:      log,
		service:     svc,
		hub:         hub,
		dbAdapter:   dbAdapter,
		cache:       cache,
		httpServer:  httpServer,
		nsqConsumer: nsqConsumer,
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.shutdown()
}
