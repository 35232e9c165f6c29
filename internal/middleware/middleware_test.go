package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{"remote host", "", "198.51.100.10:1234", "198.51.100.10"},
		{"forwarded header ignored", "203.0.113.1", "198.51.100.10:1234", "198.51.100.10"},
		{"ipv6 remote", "", net.JoinHostPort("2001:db8::2", "443"), "2001:db8::2"},
		{"remote without port", "", "203.0.113.1", "203.0.113.1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			assert.Equal(t, tc.want, clientIPForRateLimit(req))
		})
	}
}

func hitFrom(h http.Handler, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitPerClient(t *testing.T) {
	h := RateLimit(2)(okHandler())

	assert.Equal(t, http.StatusOK, hitFrom(h, "198.51.100.1:1000", ""))
	assert.Equal(t, http.StatusOK, hitFrom(h, "198.51.100.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(h, "198.51.100.1:1002", ""))
	assert.Equal(t, http.StatusOK, hitFrom(h, "198.51.100.2:1000", ""))
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	h := RateLimit(2)(okHandler())

	allowed := 0
	for i := 0; i < 50; i++ {
		if hitFrom(h, "198.51.100.1:1000", fmt.Sprintf("203.0.113.%d", i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
}

func TestRateLimitBehindRealIP(t *testing.T) {
	h := chimw.RealIP(RateLimit(1)(okHandler()))

	assert.Equal(t, http.StatusOK, hitFrom(h, "10.0.0.1:1000", "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(h, "10.0.0.1:1000", "203.0.113.1"))
	assert.Equal(t, http.StatusOK, hitFrom(h, "10.0.0.1:1000", "203.0.113.2"))
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	store := newLimiterStore(1)
	store.now = func() time.Time { return now }
	h := rateLimit(store)(okHandler())

	for i := 0; i < 100; i++ {
		hitFrom(h, fmt.Sprintf("198.51.100.%d:1000", i), "")
	}
	assert.Equal(t, 100, store.size())

	now = now.Add(idleTTL)
	assert.Equal(t, http.StatusOK, hitFrom(h, "192.0.2.1:1000", ""))
	assert.Equal(t, 1, store.size())
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
}

func TestLoggerAndMetricsUseRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_http_duration_seconds"},
		[]string{"method", "route", "code"})

	r := chi.NewRouter()
	r.Use(RequestID, Logger(zerolog.New(&buf)), Metrics(hist))
	r.Get("/api/campaigns/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/campaigns/42", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/api/campaigns/{id}", line["route"])
	assert.Equal(t, float64(404), line["status"])
	assert.NotEmpty(t, line["request_id"])

	reg := prometheus.NewRegistry()
	reg.MustRegister(hist)
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	require.Len(t, families[0].GetMetric(), 1)

	labels := map[string]string{}
	for _, lp := range families[0].GetMetric()[0].GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	assert.Equal(t, map[string]string{"method": "GET", "route": "/api/campaigns/{id}", "code": "404"}, labels)
}

func TestLoggerPutsRequestLoggerOnContext(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("handler")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handlerLine map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
	assert.Equal(t, "handler", handlerLine["message"])
	assert.Equal(t, "abc-123", handlerLine["request_id"])
}
