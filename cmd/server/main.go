package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dancosta154/leadership-profile/internal/api"
	"github.com/dancosta154/leadership-profile/internal/config"
	"github.com/dancosta154/leadership-profile/internal/db"
	"github.com/dancosta154/leadership-profile/internal/services"
	"github.com/dancosta154/leadership-profile/internal/store"
	"github.com/dancosta154/leadership-profile/pkg/logger"
	"github.com/dancosta154/leadership-profile/pkg/metrics"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	cfg.LogConfig(zapLogger)

	database, err := db.Initialize(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Upload.Folder, 0o755); err != nil {
		zapLogger.Fatal("Failed to create upload folder", zap.Error(err))
	}

	collector := metrics.NewCollector()
	documents := store.NewGormStore(database)
	catalog := services.NewCatalogService(documents, cfg.Upload.Folder, cfg.Upload.AllowedExtensions, zapLogger, collector)
	sessions := services.NewSessionService(cfg.Security.AdminPasswordHash, cfg.Security.SessionLifetime, zapLogger)
	defer sessions.Close()

	router := api.NewRouter(zapLogger, collector, catalog, sessions, cfg)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	zapLogger.Info("Server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}

	if sqlDB, err := database.DB(); err == nil {
		sqlDB.Close()
	}
	zapLogger.Info("Server gracefully stopped")
}
