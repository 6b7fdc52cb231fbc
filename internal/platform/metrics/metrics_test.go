package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementUsersCreated()
	m.IncrementLoginAttempt(true)
	m.IncrementLoginAttempt(false)
	m.IncrementLoginAttempt(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.UsersCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.IncrementUsersCreated()
	m.IncrementLoginAttempt(true)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/donors/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/donors/123", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration, "lahu_http_request_duration_seconds"))
}
