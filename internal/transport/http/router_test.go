package httptransport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lahu/internal/platform/metrics"
	"lahu/pkg/platform/middleware/request"
	"lahu/pkg/testutil"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

func newTestRouter(checks map[string]HealthCheck) (http.Handler, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
		HealthChecks: checks,
		Handlers:     []Registrar{pingHandler{}},
	}), reg
}

func TestRouter_ServesHandlersAtRootAndUnderAPI(t *testing.T) {
	router, _ := newTestRouter(nil)

	for _, path := range []string{"/ping", "/api/ping"} {
		rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNoContent, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID), path)
	}
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/nope", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestRouter_WrongMethod(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodDelete, "/ping", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusMethodNotAllowed, "method_not_allowed")
}

func TestRouter_RecoversPanics(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRouter_EchoesRequestID(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(request.HeaderRequestID, "req-123")
	rr := testutil.DoRequest(router, req)
	assert.Equal(t, "req-123", rr.Header().Get(request.HeaderRequestID))
}

func TestRouter_Health(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})

		rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["postgres"])
	})

	t.Run("dependency down", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		resp := testutil.UnmarshalResponse[healthResponse](t, rr)
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["redis"])
		assert.Equal(t, "ok", resp.Checks["postgres"])
	})
}

func TestRouter_MetricsRecordRoutePattern(t *testing.T) {
	router, _ := newTestRouter(nil)

	testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "lahu_http_request_duration_seconds"))
	assert.True(t, strings.Contains(body, `route="/api/ping"`))
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(Deps{
		CORSOrigins: []string{"https://lahu.example"},
		Handlers:    []Registrar{pingHandler{}},
	})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://lahu.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.DoRequest(router, req)

	assert.Equal(t, "https://lahu.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_WelcomeMessage(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := testutil.DoRequest(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := *testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Contains(t, resp["message"], "Lahu")
}
