package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"provider_map/pkg/logx"
	"provider_map/pkg/middlewarex"
)

type RouterConfig struct {
	LogFieldMaxLen int
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts the API behind the middleware chain. The chain order
// matters: the trace id must exist before the logger is derived from it.
func NewRouter(s Server, cfg RouterConfig) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.Metrics,
		middlewarex.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		middlewarex.RequestLogging(masker, cfg.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.LogFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}
