package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"provider_map/pkg/logx"
)

const defaultReadHeaderTimeout = 5 * time.Second

// HTTPServer serves the public API and drains in-flight requests for up to
// ShutdownTimeout once the context is cancelled.
type HTTPServer struct {
	ListenAddress   string
	Handler         http.Handler
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (h HTTPServer) server(ctx context.Context) *http.Server {
	return &http.Server{
		//nolint:exhaustruct
		Addr:              h.ListenAddress,
		Handler:           h.Handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		ReadTimeout:       h.ReadTimeout,
		WriteTimeout:      h.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}

func (h HTTPServer) Run(ctx context.Context, g *errgroup.Group) {
	httpServer := h.server(ctx)

	g.Go(func() error {
		go func() {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger(ctx).Error("http server shutdown", logx.Error(err))
			}
		}()

		logger(ctx).Info("http server started", slog.String("address", h.ListenAddress))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("address", h.ListenAddress))

		return nil
	})
}
