package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lahu/internal/ratelimit"
	"lahu/internal/ratelimit/metrics"
	"lahu/pkg/platform/httputil"
	"lahu/pkg/requestcontext"
)

// authPaths are matched as suffixes so the /api mount is covered too.
var authPaths = []string{"/auth/signup", "/auth/login", "/token"}

type Middleware struct {
	store    ratelimit.Store
	limits   map[ratelimit.Class]ratelimit.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
	now      func() time.Time
}

type Option func(*Middleware)

// WithDisabled turns the middleware into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

func WithLimit(class ratelimit.Class, limit ratelimit.Limit) Option {
	return func(m *Middleware) {
		if limit.Requests > 0 && limit.Window > 0 {
			m.limits[class] = limit
		}
	}
}

func New(store ratelimit.Store, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store: store,
		limits: map[ratelimit.Class]ratelimit.Limit{
			ratelimit.ClassAuth:    {Requests: 10, Window: time.Minute},
			ratelimit.ClassDefault: {Requests: 300, Window: time.Minute},
		},
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// Handler limits each client IP per endpoint class. Store failures let the
// request through.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	if m.disabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		class := classify(r)
		limit := m.limits[class]
		ip := requestcontext.ClientIP(ctx)

		result, err := m.store.Allow(ctx, ratelimit.Key(class, ip), limit)
		if err != nil {
			m.metrics.IncrementStoreErrors()
			m.logger.ErrorContext(ctx, "failed to check rate limit",
				"error", err,
				"class", string(class),
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncrementRejected(string(class))
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"class", string(class),
				"request_id", requestcontext.RequestID(ctx),
			)
			writeRateLimitExceeded(w, result.RetryAfter(m.now()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func classify(r *http.Request) ratelimit.Class {
	if r.Method != http.MethodPost {
		return ratelimit.ClassDefault
	}
	for _, p := range authPaths {
		if strings.HasSuffix(r.URL.Path, p) {
			return ratelimit.ClassAuth
		}
	}
	return ratelimit.ClassDefault
}

func addRateLimitHeaders(w http.ResponseWriter, result ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

type rateLimitExceededResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

func writeRateLimitExceeded(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, rateLimitExceededResponse{
		Error:            "rate_limit_exceeded",
		ErrorDescription: "Too many requests. Please try again later.",
		RetryAfter:       retryAfter,
	})
}
