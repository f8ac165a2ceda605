package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"provider_map/pkg/contextx"
	"provider_map/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type snapshotService interface {
	WarmSnapshot(ctx context.Context) (int, error)
}

// SnapshotWarmer keeps the provider snapshot cached so map requests rarely
// pay for a rebuild. It only asks the cache, so a fresh entry is left alone.
type SnapshotWarmer struct {
	service  snapshotService
	interval time.Duration

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewSnapshotWarmer(service snapshotService, interval time.Duration) *SnapshotWarmer {
	return &SnapshotWarmer{
		service:  service,
		interval: interval,
	}
}

func (w *SnapshotWarmer) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("snapshot warmer is already running")
	}

	warmCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(warmCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("snapshot warmer stopped", logx.Error(err))
		}
	}()

	return nil
}

func (w *SnapshotWarmer) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *SnapshotWarmer) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

// Run warms once immediately and then every interval until ctx is done.
func (w *SnapshotWarmer) Run(ctx context.Context) error {
	logger(ctx).Info("snapshot warmer started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.warm(ctx)

		select {
		case <-ctx.Done():
			logger(ctx).Info("snapshot warmer stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *SnapshotWarmer) warm(ctx context.Context) {
	size, err := w.service.WarmSnapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger(ctx).Error("snapshot warm failed", logx.Error(err))
		}
		return
	}

	logger(ctx).Debug("snapshot warm", slog.Int(logx.FieldProviders, size))
}
