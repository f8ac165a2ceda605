package snapshotcache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"provider_map/internal/domain"
	"provider_map/internal/domain/entity"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/logx"
	"provider_map/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RedisClient is the subset of go-redis used by the cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Redis shares the snapshot between instances. Expiry is left to redis.
type Redis struct {
	cfg    Config
	client RedisClient
	group  singleflight.Group
}

func NewRedis(client RedisClient, cfg Config) *Redis {
	return &Redis{
		cfg:    cfg.withDefaults(),
		client: client,
	}
}

func (r *Redis) GetOrBuild(ctx context.Context, fn BuildFunc) ([]entity.SnapshotEntry, error) {
	snapshot, err := r.lookup(ctx)
	switch {
	case err == nil:
		metrics.SnapshotLookups.WithLabelValues(BackendRedis, metrics.ResultHit).Inc()
		return snapshot, nil
	case !errors.Is(err, redis.Nil):
		metrics.SnapshotLookups.WithLabelValues(BackendRedis, metrics.ResultError).Inc()
		return nil, domain.WrapError(err, errcodes.SnapshotUnavailable, "failed to read snapshot")
	}

	metrics.SnapshotLookups.WithLabelValues(BackendRedis, metrics.ResultMiss).Inc()

	return shared(ctx, &r.group, r.cfg.Key, func(ctx context.Context) ([]entity.SnapshotEntry, error) {
		snapshot, err := build(ctx, BackendRedis, r.cfg, fn)
		if err != nil {
			return nil, err
		}

		r.store(ctx, snapshot)

		return snapshot, nil
	})
}

// lookup treats an undecodable value as a miss so it gets overwritten.
func (r *Redis) lookup(ctx context.Context) ([]entity.SnapshotEntry, error) {
	raw, err := r.client.Get(ctx, r.cfg.Key).Bytes()
	if err != nil {
		return nil, err
	}

	var snapshot []entity.SnapshotEntry
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		logger(ctx).WarnContext(
			ctx,
			"cached snapshot is corrupt",
			slog.String(logx.FieldCacheKey, r.cfg.Key),
			logx.Error(err),
		)
		return nil, redis.Nil
	}

	return snapshot, nil
}

// store is best effort: a failed write only costs a rebuild on the next
// request.
func (r *Redis) store(ctx context.Context, snapshot []entity.SnapshotEntry) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		logger(ctx).ErrorContext(ctx, "json.Marshal", logx.Error(err))
		return
	}

	if err = r.client.Set(ctx, r.cfg.Key, data, r.cfg.TTL).Err(); err != nil {
		logger(ctx).ErrorContext(
			ctx,
			"redis.Set",
			slog.String(logx.FieldCacheKey, r.cfg.Key),
			logx.Error(err),
		)
	}
}
