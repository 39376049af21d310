package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/seamline/internal/adapter/api"
	"github.com/V4T54L/seamline/internal/adapter/metrics"
	"github.com/V4T54L/seamline/internal/adapter/repository/postgres"
	redisrepo "github.com/V4T54L/seamline/internal/adapter/repository/redis"
	"github.com/V4T54L/seamline/internal/pkg/config"
	"github.com/V4T54L/seamline/internal/pkg/logger"
	"github.com/V4T54L/seamline/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.NewQueryMetrics()

	// --- Start Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	adminServer := &http.Server{
		Addr:    cfg.AdminServerAddr,
		Handler: adminMux,
	}

	go func() {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store Connections ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to open postgres connection", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// The speed layer being down is survivable: every lookup falls back
		// to the batch store at the cost of point queries.
		log.Warn("could not connect to redis, speed-layer lookups will fall back to batch", "error", err)
	} else {
		log.Info("connected to redis")
	}

	// --- Initialize Repositories and Use Cases ---
	batchStore := postgres.NewOrderRepository(db, log)
	speedStore := redisrepo.NewCounterRepository(redisClient, log)

	seriesUC := usecase.NewOrderSeriesUseCase(batchStore, speedStore, cfg.BatchRefreshInterval, cfg.SpeedConcurrency, log, m)
	analyticsUC := usecase.NewAnalyticsUseCase(batchStore, log, m)

	// --- Initialize Query Server ---
	app := api.NewRouter(log, seriesUC, analyticsUC)

	go func() {
		log.Info("starting query server", "addr", cfg.QueryServerAddr)
		if err := app.Listen(cfg.QueryServerAddr); err != nil {
			log.Error("query server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("query server shutdown failed", "error", err)
	}
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin server shutdown failed", "error", err)
	}

	log.Info("servers shut down gracefully")
}
