package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dailythought/internal/config"
	"dailythought/internal/db"
	"dailythought/internal/handlers"
	"dailythought/internal/repository"
	"dailythought/internal/services"
)

func newLogger(cfg config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewExample()
	}
	return logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer conn.Close()

	enc, err := services.NewEncryptionService(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("invalid ENCRYPTION_KEY", zap.Error(err))
	}
	if !enc.Enabled() {
		logger.Warn("ENCRYPTION_KEY not set; diary bodies are stored in plaintext")
	}

	metrics := services.NewMetrics(nil)
	repo := repository.NewDiaryRepository(conn)
	moods := services.NewAnalyticsService(repo, cfg.TrendWindow, cfg.AnalyticsCacheTTL,
		services.WithAnalyticsMetrics(metrics),
		services.WithAnalyticsLogger(logger.Named("analytics")),
	)
	diaries := services.NewDiaryService(repo, enc,
		services.WithMoodTracking(cfg.MoodTrackingEnabled),
		services.WithAnalytics(moods),
		services.WithDiaryMetrics(metrics),
		services.WithDiaryLogger(logger.Named("diary")),
	)

	router := handlers.NewRouter(handlers.RouterConfig{
		JWTSecret: []byte(cfg.JWTSecret),
		Diaries:   diaries,
		Analytics: moods,
		Metrics:   metrics,
		Logger:    logger,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
