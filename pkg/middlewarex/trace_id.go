package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"provider_map/pkg/contextx"
)

const (
	HeaderTraceID = "X-Trace-Id"

	maxTraceIDLen = 64
)

// TraceID propagates the caller's trace id or starts a new one. Ids that
// are too long or contain anything but [A-Za-z0-9._-] are replaced, since
// they end up in logs and response headers.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(HeaderTraceID)

		if !validTraceID(traceID) {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(r.Context(), contextx.TraceID(traceID))

		w.Header().Set(HeaderTraceID, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}

	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}

	return true
}
