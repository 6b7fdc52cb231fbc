package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics. Module specific metrics
// live next to their module (e.g. internal/compatibility/metrics).
type Metrics struct {
	UsersCreated    prometheus.Counter
	LoginAttempts   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all platform metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "lahu_users_created_total",
			Help: "Total number of users created in the system",
		}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lahu_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}), // outcome: "success", "failure"
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lahu_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern, method and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),
	}
}

// IncrementUsersCreated increments the users created counter by 1
func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}

// IncrementLoginAttempt records a login attempt outcome.
func (m *Metrics) IncrementLoginAttempt(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

// Middleware observes request latency labelled by chi route pattern, so
// path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
