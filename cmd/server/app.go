package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	authHandler "lahu/internal/auth/handler"
	"lahu/internal/auth/service"
	"lahu/internal/bloodrequest"
	bloodrequestHandler "lahu/internal/bloodrequest/handler"
	"lahu/internal/compatibility"
	compatHandler "lahu/internal/compatibility/handler"
	compatMetrics "lahu/internal/compatibility/metrics"
	"lahu/internal/donation"
	donationAdapters "lahu/internal/donation/adapters"
	donationHandler "lahu/internal/donation/handler"
	"lahu/internal/donor"
	donorHandler "lahu/internal/donor/handler"
	jwttoken "lahu/internal/jwt_token"
	"lahu/internal/platform/config"
	"lahu/internal/platform/metrics"
	"lahu/internal/ratelimit"
	ratelimitMetrics "lahu/internal/ratelimit/metrics"
	ratelimitMiddleware "lahu/internal/ratelimit/middleware"
	httptransport "lahu/internal/transport/http"
	authmw "lahu/pkg/platform/middleware/auth"
	"lahu/pkg/platform/middleware/metadata"
)

const seedAdminName = "Lahu Admin"

// newRouter builds every service on top of the available infrastructure and
// returns the HTTP handler. A nil registerer disables metrics.
func newRouter(ctx context.Context, cfg config.Server, in *infra, log *slog.Logger, registerer prometheus.Registerer, gatherer prometheus.Gatherer) (http.Handler, error) {
	var (
		platformMetrics *metrics.Metrics
		checkMetrics    *compatMetrics.Metrics
		limiterMetrics  *ratelimitMetrics.Metrics
	)
	if registerer != nil {
		platformMetrics = metrics.New(registerer)
		checkMetrics = compatMetrics.New(registerer)
		limiterMetrics = ratelimitMetrics.New(registerer)
	}

	stores := newStores(in.db)
	revocations := newRevocationList(in.redis)
	publisher := newAuditPublisher(in.kafka, cfg.Kafka.AuditTopic, log)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer)
	requireAuth := authmw.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), revocations, log)

	authService := service.New(stores.users, jwtService, revocations,
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(platformMetrics),
		service.WithTokenTTL(cfg.Auth.AccessTokenTTL),
	)
	if cfg.Seed.AdminEmail != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, seedAdminName); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		log.Info("admin account ready", "email", cfg.Seed.AdminEmail)
	}

	compatService := compatibility.New(
		compatibility.WithLogger(log),
		compatibility.WithMetrics(checkMetrics),
		compatibility.WithTracer(otel.Tracer("lahu/compatibility")),
	)
	donorService := donor.NewService(stores.donors,
		donor.WithLogger(log),
		donor.WithAuditPublisher(publisher),
	)
	requestService := bloodrequest.NewService(stores.requests, donorService,
		bloodrequest.WithLogger(log),
		bloodrequest.WithAuditPublisher(publisher),
	)
	donationService := donation.NewService(stores.donations, donationAdapters.NewUserStoreAdapter(stores.users),
		donation.WithLogger(log),
		donation.WithAuditPublisher(publisher),
		donation.WithTxRunner(stores.tx),
	)

	trustedProxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	limiter := ratelimitMiddleware.New(newRateLimitStore(in.redis), log,
		ratelimitMiddleware.WithDisabled(!cfg.RateLimit.Enabled),
		ratelimitMiddleware.WithMetrics(limiterMetrics),
		ratelimitMiddleware.WithLimit(ratelimit.ClassAuth, ratelimit.Limit{Requests: cfg.RateLimit.AuthPerMinute, Window: time.Minute}),
		ratelimitMiddleware.WithLimit(ratelimit.ClassDefault, ratelimit.Limit{Requests: cfg.RateLimit.DefaultPerMinute, Window: time.Minute}),
	)

	return httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        platformMetrics,
		Gatherer:       gatherer,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: trustedProxies,
		RateLimit:      limiter.Handler,
		HealthChecks:   in.HealthChecks(),
		Handlers: []httptransport.Registrar{
			authHandler.New(authService, log, requireAuth),
			compatHandler.New(compatService, log),
			donorHandler.New(donorService, log, requireAuth),
			bloodrequestHandler.New(requestService, log),
			donationHandler.New(donationService, log, requireAuth),
		},
	}), nil
}
