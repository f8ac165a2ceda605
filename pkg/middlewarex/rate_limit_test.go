package middlewarex_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"provider_map/pkg/middlewarex"
)

func TestRateLimit(t *testing.T) {
	rq := require.New(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middlewarex.RateLimit(1, 2)(next)

	codes := make([]int, 0, 3)

	for range 3 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/providers/map", http.NoBody)
		r.RemoteAddr = "10.0.0.1:5555"

		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	rq.Equal([]int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/providers/map", http.NoBody)
	r.RemoteAddr = "10.0.0.2:5555"

	handler.ServeHTTP(w, r)
	rq.Equal(http.StatusOK, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	rq := require.New(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := middlewarex.RateLimit(0, 0)(next)

	for range 5 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		rq.Equal(http.StatusNoContent, w.Code)
	}
}

func TestTraceID(t *testing.T) {
	rq := require.New(t)

	var seen string

	handler := middlewarex.TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Trace-Id")
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.Header.Set("X-Trace-Id", "trace-1")

	handler.ServeHTTP(w, r)

	rq.Equal("trace-1", seen)
	rq.Equal("trace-1", w.Header().Get("X-Trace-Id"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rq.Len(w.Header().Get("X-Trace-Id"), 20)

	for _, bad := range []string{"has space", "new\nline", strings.Repeat("a", 65)} {
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		r.Header.Set(middlewarex.HeaderTraceID, bad)

		handler.ServeHTTP(w, r)
		rq.NotEqual(bad, w.Header().Get(middlewarex.HeaderTraceID))
		rq.Len(w.Header().Get(middlewarex.HeaderTraceID), 20)
	}
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	handler := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()

	rq.NotPanics(func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
	rq.Equal(http.StatusInternalServerError, w.Code)
	rq.Contains(w.Body.String(), `"success":false`)
	rq.Contains(w.Body.String(), "Internal server error")

	aborting := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	rq.PanicsWithValue(http.ErrAbortHandler, func() {
		aborting.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}
