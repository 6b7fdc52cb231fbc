// Package httptransport assembles the chi router: the shared middleware
// chain, the operational endpoints and every module's routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lahu/internal/platform/metrics"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/platform/middleware/metadata"
	"lahu/pkg/platform/middleware/request"
	"lahu/pkg/platform/middleware/requesttime"
	"lahu/pkg/requestcontext"
)

const healthCheckTimeout = 2 * time.Second

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps collects what the router needs. Nil Metrics, Gatherer or RateLimit
// disable the corresponding concern. Forwarding headers are only read from
// peers inside TrustedProxies.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	CORSOrigins    []string
	TrustedProxies []netip.Prefix
	RateLimit      func(http.Handler) http.Handler
	HealthChecks   map[string]HealthCheck
	Handlers       []Registrar
}

// NewRouter wires the middleware chain and mounts every handler both at the
// root and under /api.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata(d.TrustedProxies))
	r.Use(requesttime.Middleware)
	r.Use(accessLog(logger))
	r.Use(chimw.Recoverer)
	if d.RateLimit != nil {
		r.Use(d.RateLimit)
	}
	r.Use(d.Metrics.Middleware)
	r.Use(cors.Handler(corsOptions(d.CORSOrigins)))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Lahu Blood Donation API"})
	})
	r.Get("/health", healthHandler(logger, d.HealthChecks))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		for _, h := range d.Handlers {
			h.Register(r)
		}
	})
	r.Route("/api", func(r chi.Router) {
		for _, h := range d.Handlers {
			h.Register(r)
		}
	})
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", request.HeaderRequestID},
		ExposedHeaders:   []string{request.HeaderRequestID},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", requestcontext.RequestID(r.Context()),
			)
		})
	}
}
