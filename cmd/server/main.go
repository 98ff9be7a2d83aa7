package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"moviepreview/internal/cache"
	"moviepreview/internal/config"
	"moviepreview/internal/handlers"
	"moviepreview/internal/metrics"
	"moviepreview/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Session state only; catalog answers are never cached
	store, err := cache.New(cfg.ValkeyURL, cfg.SessionMaxItems)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog := services.NewCatalogService(services.CatalogOptions{
		BaseURL:    cfg.CatalogBaseURL,
		Storefront: cfg.CatalogStorefront,
		Timeout:    cfg.CatalogTimeout,
		UserAgent:  cfg.CatalogUserAgent,
		Metrics:    m,
	})
	resolver := services.NewPreviewResolutionService(catalog,
		services.WithMetrics(m),
		services.WithStrictFallback(cfg.StrictFallback))
	sessions := services.NewPreviewSessionService(store, cfg.SessionTTL)

	router := handlers.NewRouter(handlers.RouterConfig{
		Catalog:    catalog,
		Resolver:   resolver,
		Sessions:   sessions,
		Gatherer:   registry,
		Storefront: cfg.CatalogStorefront,
		SessionTTL: cfg.SessionTTL,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running",
			"port", cfg.Port,
			"storefront", cfg.CatalogStorefront,
			"strictFallback", cfg.StrictFallback,
			"valkey", cfg.ValkeyURL != "")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
