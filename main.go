package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"conference-webapp/config"
	"conference-webapp/database"
	"conference-webapp/handlers"
	"conference-webapp/logging"
	"conference-webapp/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	store, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalw("cannot open store", "store", cfg.Store, "error", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Errorw("close store", "error", err)
		}
	}()

	app := router.New(handlers.New(store, logger, cfg.Sign), cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Errorw("shutdown", "error", err)
		}
	}()

	logger.Infow("server is running", "addr", cfg.ListenAddr(), "store", cfg.Store, "adminAuth", cfg.AdminAuth)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.Errorw("listen", "error", err)
	}
}

func openStore(cfg config.Config, logger *zap.SugaredLogger) (database.Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		return database.NewMemoryStore(), nil
	}

	store, err := database.Connect(context.Background(), cfg.MongoURI, cfg.Database, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	logger.Infow("MongoDB connected", "database", cfg.Database)
	return store, nil
}
