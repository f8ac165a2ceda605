package snapshotcache

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"provider_map/internal/domain/entity"
	"provider_map/pkg/metrics"
)

type memoryItem struct {
	snapshot  []entity.SnapshotEntry
	expiresAt time.Time
}

// Memory is an in-process cache. Concurrent misses on the same key share a
// single build.
type Memory struct {
	cfg   Config
	store *cache.Cache
	group singleflight.Group
	now   func() time.Time
}

type MemoryOption func(*Memory)

// WithNow replaces the clock used to decide expiry.
func WithNow(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

func NewMemory(cfg Config, cleanupInterval time.Duration, opts ...MemoryOption) *Memory {
	cfg = cfg.withDefaults()

	m := &Memory{
		cfg:   cfg,
		store: cache.New(cfg.TTL, cleanupInterval),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Memory) GetOrBuild(ctx context.Context, fn BuildFunc) ([]entity.SnapshotEntry, error) {
	if snapshot, ok := m.lookup(); ok {
		metrics.SnapshotLookups.WithLabelValues(BackendMemory, metrics.ResultHit).Inc()
		return snapshot, nil
	}

	metrics.SnapshotLookups.WithLabelValues(BackendMemory, metrics.ResultMiss).Inc()

	return shared(ctx, &m.group, m.cfg.Key, func(ctx context.Context) ([]entity.SnapshotEntry, error) {
		if snapshot, ok := m.lookup(); ok {
			return snapshot, nil
		}

		snapshot, err := build(ctx, BackendMemory, m.cfg, fn)
		if err != nil {
			return nil, err
		}

		m.store.Set(m.cfg.Key, memoryItem{
			snapshot:  snapshot,
			expiresAt: m.now().Add(m.cfg.TTL),
		}, m.cfg.TTL)

		return snapshot, nil
	})
}

func (m *Memory) lookup() ([]entity.SnapshotEntry, bool) {
	v, ok := m.store.Get(m.cfg.Key)
	if !ok {
		return nil, false
	}

	item := v.(memoryItem) //nolint:forcetypeassert
	if !m.now().Before(item.expiresAt) {
		return nil, false
	}

	return item.snapshot, true
}
