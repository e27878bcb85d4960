// Command api is the tennis monitoring dashboard API server.
//
// Usage:
//
//	tenis-api
//	TENNIS_PROVIDER=livetennis API_PORT=8080 tenis-api

// @title Painel de Monitoramento de Tênis API
// @version 1.0
// @description Live tennis matches, player history, head-to-head and news aggregated from a RapidAPI tennis provider.
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/aggregate"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/api"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/config"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/logging"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/upstream"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	bootLogger := logging.New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	pc := cfg.ProviderInfo()
	logger.Info("Configuration loaded",
		"provider", pc.ID,
		"provider_name", pc.Name,
		"api_host", cfg.UpstreamAPIHost,
		"news_source", cfg.NewsSource,
		"environment", cfg.Environment,
		"production", cfg.IsProduction())

	// Upstream + aggregator
	up, err := upstream.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to build upstream provider", "error", err)
		os.Exit(1)
	}
	agg := aggregate.New(up, aggregate.Options{Logger: logger})

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create router
	router := api.NewRouter(agg, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 20*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting tennis dashboard API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
