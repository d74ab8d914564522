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

	"github.com/jaw1999/planning-tool-sub002/internal/cache"
	"github.com/jaw1999/planning-tool-sub002/internal/handler"
	"github.com/jaw1999/planning-tool-sub002/internal/logging"
	"github.com/jaw1999/planning-tool-sub002/internal/metrics"
	"github.com/jaw1999/planning-tool-sub002/internal/repository"
	"github.com/jaw1999/planning-tool-sub002/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	analyticsCache, closeCache := newAnalyticsCache(ctx, cfg)
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollectors(reg)
	window := metrics.NewRequestWindow(cfg.MetricsWindow, nil)

	systemRepo := repository.NewPgSystemRepository(pool)
	consumableRepo := repository.NewPgConsumableRepository(pool)
	exerciseRepo := repository.NewPgExerciseRepository(pool)
	settingsRepo := repository.NewPgSettingsRepository(pool)

	settingsService := service.NewSettingsService(settingsRepo, analyticsCache)
	systemService := service.NewSystemService(systemRepo, consumableRepo, analyticsCache)
	consumableService := service.NewConsumableService(consumableRepo, analyticsCache)
	exerciseService := service.NewExerciseService(exerciseRepo, systemRepo, analyticsCache)
	costService := service.NewCostService(exerciseRepo, systemRepo, settingsService, collector)
	analyticsService := service.NewAnalyticsService(exerciseRepo, systemRepo, settingsService,
		service.WithCache(analyticsCache),
		service.WithMetrics(collector),
		service.WithConcurrency(cfg.AnalyticsConcurrency),
	)

	base := handler.New(pool, cfg.FrontendURL)
	mux := newMux(handlers{
		base:        base,
		systems:     handler.NewSystemHandler(systemService),
		consumables: handler.NewConsumableHandler(consumableService),
		exercises:   handler.NewExerciseHandler(exerciseService),
		costs:       handler.NewCostHandler(costService),
		analytics:   handler.NewAnalyticsHandler(analyticsService),
		settings:    handler.NewSettingsHandler(settingsService),
		adminStats:  handler.NewMetricsHandler(window),
		prometheus:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	defer limiter.Close()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      chain(mux, base, handler.NewRequestLogger(window, collector), limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newAnalyticsCache connects to Redis when REDIS_URL is set. An unreachable
// Redis falls back to no caching rather than blocking startup.
func newAnalyticsCache(ctx context.Context, cfg Config) (cache.AnalyticsCache, func()) {
	if cfg.RedisURL == "" {
		slog.Info("analytics cache disabled")
		return cache.Nop{}, func() {}
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logging.Fatal("invalid redis url", "error", err)
	}
	client := redis.NewClient(opts)
	c := cache.NewRedisAnalyticsCache(client, cfg.AnalyticsCacheTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		slog.Warn("redis unreachable, analytics cache disabled", "error", err)
		_ = client.Close()
		return cache.Nop{}, func() {}
	}
	slog.Info("analytics cache enabled", "ttl", cfg.AnalyticsCacheTTL)
	return c, func() { _ = client.Close() }
}
