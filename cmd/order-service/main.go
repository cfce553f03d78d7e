package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"vitrine/internal/commons"
	"vitrine/internal/infrastructure/logger"
	"vitrine/internal/infrastructure/mysql"
	"vitrine/internal/order"
	"vitrine/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New("order-service", cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.Sync {
		if err := mysql.Sync(db, true); err != nil {
			zapLogger.Fatal("syncing database schema", zap.Error(err))
		}
		zapLogger.Warn("database schema recreated", zap.String("database", cfg.Database.Name))
	}

	mod, err := order.NewModule(db, cfg.Order, zapLogger)
	if err != nil {
		zapLogger.Fatal("wiring order module", zap.Error(err))
	}

	router := server.NewOrderRouter(mod, zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
