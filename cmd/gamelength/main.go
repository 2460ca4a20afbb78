// Package main is the entry point for the playtime resolution server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"gamelength/config"
	"gamelength/internal/backends/hltb"
	"gamelength/internal/backends/serp"
	"gamelength/internal/cache"
	"gamelength/internal/resolver"
	"gamelength/internal/server"
	"gamelength/internal/version"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogging(cfg.Logging)

	slog.Info("starting gamelength",
		"version", version.Version,
		"commit", version.Commit,
		"build_date", version.Date,
	)

	// Security check: warn if no master key is configured
	if cfg.Server.MasterKey == "" {
		slog.Warn("SECURITY WARNING: GAMELENGTH_MASTER_KEY not set - server running in UNSAFE MODE",
			"security_risk", "unauthenticated access allowed",
			"recommendation", "set GAMELENGTH_MASTER_KEY environment variable to secure this service")
	} else {
		slog.Info("authentication enabled", "mode", "master_key")
	}

	// Result cache: Redis when configured, otherwise in-memory
	var store cache.Store
	if cfg.Cache.RedisURL != "" {
		store, err = cache.NewRedisStore(cache.RedisConfig{
			URL: cfg.Cache.RedisURL,
			TTL: cfg.Cache.TTL,
		})
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
	} else {
		store = cache.NewMemoryStore(cfg.Cache.TTL)
		slog.Info("in-memory cache enabled", "ttl", cfg.Cache.TTL)
	}
	defer func() {
		_ = store.Close()
	}()

	// Backends
	var primary resolver.Primary
	if cfg.HLTB.Enabled {
		primary = hltb.New()
		slog.Info("primary backend enabled", "backend", "hltb")
	} else {
		slog.Warn("primary backend disabled")
	}

	var fallback resolver.Fallback
	if cfg.Serp.FallbackAvailable() {
		fallback = serp.New(cfg.Serp.APIKey)
		slog.Info("fallback backend enabled", "backend", "serp")
	} else {
		slog.Info("fallback backend unavailable", "reason", "disabled or no SERP_API_KEY")
	}

	if primary == nil && fallback == nil {
		slog.Error("at least one backend must be available")
		os.Exit(1)
	}

	res := resolver.New(primary, fallback)

	if cfg.Metrics.Enabled {
		slog.Info("prometheus metrics enabled", "endpoint", cfg.Metrics.Endpoint)
	} else {
		slog.Info("prometheus metrics disabled")
	}

	// Create and start server
	serverCfg := &server.Config{
		MasterKey:       cfg.Server.MasterKey,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsEndpoint: cfg.Metrics.Endpoint,
		BodySizeLimit:   cfg.Server.BodySizeLimit,
	}
	srv := server.New(res, store, serverCfg)

	// Handle graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	addr := ":" + cfg.Server.Port
	slog.Info("starting server", "address", addr)

	if err := srv.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
		} else {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}
}

// setupLogging installs the default slog logger: JSON output for production,
// tint's pretty handler for local development.
func setupLogging(cfg config.LoggingConfig) {
	level := parseLevel(cfg.Level)

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
