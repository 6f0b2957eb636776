// cmd/intent-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/config"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/database"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/observability"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/cache"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/llm"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intent server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Result cache backend ---
	var store cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := database.NewRedis(cfg.Cache.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		defer redisClient.Close()
		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Fatal("redis unreachable", zap.Error(err))
		}
		store = cache.NewRedis(redisClient)
		zapLog.Info("Redis result cache connected", zap.String("address", cfg.Cache.Redis.Address))
	default:
		store = cache.NewMemory()
		zapLog.Info("Using in-memory result cache")
	}

	// --- Classification core ---
	gateway := llm.NewGateway(cfg.LLM, log)
	service, err := intent.NewService(gateway, store, cfg.Cache.GetTTL(), log, obs)
	if err != nil {
		zapLog.Fatal("service init failed", zap.Error(err))
	}

	// The LLM endpoint being down is not fatal; requests resolve through
	// the fallback classifier until it recovers.
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := service.Ping(probeCtx); err != nil {
		zapLog.Warn("LLM endpoint unreachable at startup, fallback path active", zap.Error(err))
	} else {
		zapLog.Info("LLM endpoint reachable", zap.String("model", cfg.LLM.Model))
	}
	cancel()

	// --- HTTP server ---
	srv := server.New(cfg.Server, service, log)
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Intent server stopped gracefully")
}
