package middlewarex

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"provider_map/pkg/httpx/reply"
	"provider_map/pkg/logx"
)

// Recovery turns a handler panic into the standard 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			logger(ctx).Error("panic in handler",
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Error(ctx, w, fmt.Errorf("panic: %v", rec), reply.WithMessage("Internal server error"))
		}()

		next.ServeHTTP(w, r)
	})
}
