package middlewarex

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"provider_map/pkg/errcodes"
	"provider_map/pkg/httpx/reply"
	"provider_map/pkg/logx"
)

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

// limiterStore keeps one limiter per client IP. Every request pushes the
// entry's expiry forward, so only idle clients are evicted.
type limiterStore struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func newLimiterStore(limit rate.Limit, burst int, idleTTL time.Duration) *limiterStore {
	return &limiterStore{
		limiters: cache.New(idleTTL, idleTTL),
		limit:    limit,
		burst:    burst,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
	}

	s.limiters.SetDefault(ip, limiter)

	return limiter.(*rate.Limiter) //nolint:forcetypeassert
}

// RateLimit limits requests per client IP. A non-positive rps disables it.
func RateLimit(rps float64, burst int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}

		store := newLimiterStore(rate.Limit(rps), burst, limiterIdleTTL)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !store.get(ip).Allow() {
				logger(r.Context()).Warn("rate limit exceeded", slog.String(logx.FieldIP, ip))

				reply.Error(r.Context(), w, failure.NewInvalidArgumentError(
					"rate limit exceeded",
					failure.WithCode(errcodes.TooManyRequests),
					failure.WithDescription("Rate limit exceeded. Try again later."),
				), reply.WithMessage("Too many requests"))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
