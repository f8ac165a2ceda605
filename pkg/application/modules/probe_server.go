package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"provider_map/pkg/probe"
)

// ProbeServer answers liveness and readiness; readiness runs every non-nil check.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Checks        []probe.Check
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	checks := lo.Filter(p.Checks, func(c probe.Check, _ int) bool { return c != nil })

	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{Name: p.Name, Version: p.Version},
		checks...,
	)

	logger(ctx).Debug("readiness checks registered", slog.Int("count", len(checks)))

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
