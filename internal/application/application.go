package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"provider_map/internal/config"
	"provider_map/internal/domain/service/category"
	"provider_map/internal/domain/service/discovery"
	"provider_map/internal/domain/service/facet"
	"provider_map/internal/infrastructure/persistence"
	"provider_map/internal/infrastructure/snapshotcache"
	"provider_map/internal/server"
	"provider_map/internal/worker"
	"provider_map/pkg/application/connectors"
	"provider_map/pkg/application/modules"
	"provider_map/pkg/contextx"
	"provider_map/pkg/logx"
	"provider_map/pkg/probe"
)

func Run(ctx context.Context) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := newLogger(cfg.App)
	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	checks := []probe.Check{pg.Ping}

	// 3. Repositories
	providers := persistence.NewProviderRepository(db)
	categories := persistence.NewCategoryRepository(db)

	// 4. Snapshot cache
	cacheConfig := snapshotcache.Config{
		Key: cfg.Cache.Key,
		TTL: cfg.Cache.TTL,
	}

	var cache discovery.SnapshotCache

	switch cfg.Cache.Backend {
	case snapshotcache.BackendRedis:
		rds := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
			Timeout:            cfg.Redis.Timeout,
		}
		defer rds.Close(ctx)

		cache = snapshotcache.NewRedis(rds.Client(ctx), cacheConfig)
		checks = append(checks, rds.Ping)
	default:
		cache = snapshotcache.NewMemory(cacheConfig, cfg.Cache.CleanupInterval)
	}

	log.Info("snapshot cache ready",
		slog.String(logx.FieldCacheBackend, cfg.Cache.Backend),
		slog.String(logx.FieldCacheKey, cacheConfig.Key),
	)

	// 5. Services
	resolver := category.NewResolver(categories)
	svc := discovery.NewService(providers, categories, cache, resolver, facet.NewSummarizer(resolver))

	// 6. HTTP
	srv := server.NewServer(
		server.NewProviderServer(svc),
		server.NewCategoryServer(svc),
		cfg.App.Debug,
	)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ListenAddress: cfg.HTTP.ListenAddress,
		Handler: server.NewRouter(srv, server.RouterConfig{
			LogFieldMaxLen: cfg.HTTP.LogFieldMaxLen,
			RateLimitRPS:   cfg.HTTP.RateLimitRPS,
			RateLimitBurst: cfg.HTTP.RateLimitBurst,
		}),
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks:        checks,
	}.Run(ctx, g)
	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      prometheus.DefaultGatherer,
	}.Run(ctx, g)

	if cfg.Cache.WarmInterval > 0 {
		warmer := worker.NewSnapshotWarmer(svc, cfg.Cache.WarmInterval)
		g.Go(func() error {
			if err := warmer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("warmer.Run: %w", err)
			}

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	log.Info("application stopped")

	return nil
}

func newLogger(cfg config.App) *slog.Logger {
	return logx.New(os.Stdout, logx.ParseLevel(cfg.LogLevel, slog.LevelInfo), cfg.NoColor).With(
		slog.String(logx.FieldAppName, cfg.Name),
		slog.String(logx.FieldAppVersion, cfg.Version),
	)
}
