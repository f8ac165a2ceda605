// Package snapshotcache keeps the provider discovery snapshot between
// requests. Entries expire after a TTL and are never invalidated otherwise.
package snapshotcache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"provider_map/internal/domain/entity"
	"provider_map/pkg/contextx"
	"provider_map/pkg/logx"
	"provider_map/pkg/metrics"
)

const (
	DefaultKey = "map_providers"
	DefaultTTL = 900 * time.Second
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Config struct {
	Key string
	TTL time.Duration
}

// BuildFunc produces a fresh snapshot on a miss.
type BuildFunc = func(ctx context.Context) ([]entity.SnapshotEntry, error)

func (c Config) withDefaults() Config {
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	return c
}

// build runs the builder and records its duration and result size.
func build(ctx context.Context, backend string, cfg Config, fn BuildFunc) ([]entity.SnapshotEntry, error) {
	start := time.Now()

	snapshot, err := fn(ctx)
	if err != nil {
		metrics.SnapshotLookups.WithLabelValues(backend, metrics.ResultError).Inc()
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.SnapshotBuildSeconds.WithLabelValues(backend).Observe(elapsed.Seconds())
	metrics.SnapshotSize.Set(float64(len(snapshot)))

	logger(ctx).InfoContext(
		ctx,
		"snapshot rebuilt",
		slog.String(logx.FieldCacheBackend, backend),
		slog.String(logx.FieldCacheKey, cfg.Key),
		slog.Int(logx.FieldProviders, len(snapshot)),
		slog.Int64(logx.FieldDurationMs, elapsed.Milliseconds()),
	)

	return snapshot, nil
}

// shared runs fn once per key for all concurrent callers. The build is
// detached from the caller that started it, so a cancelled request only
// abandons its own wait and the others still get the result.
func shared(
	ctx context.Context,
	group *singleflight.Group,
	key string,
	fn func(ctx context.Context) ([]entity.SnapshotEntry, error),
) ([]entity.SnapshotEntry, error) {
	ch := group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.([]entity.SnapshotEntry), nil //nolint:forcetypeassert
	}
}
