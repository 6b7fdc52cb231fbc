package compatibility

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lahu/internal/bloodtype"
	"lahu/internal/compatibility/metrics"
	dErrors "lahu/pkg/domain-errors"
)

// Service exposes the compatibility engine to the transport layer, adding
// tracing, metrics and logging around the pure functions in bloodtype.
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		tracer: otel.Tracer("lahu/internal/compatibility"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check validates both blood types (donor first) and returns the verdict.
// Invalid input is returned as *bloodtype.InvalidBloodTypeError so callers can
// echo the offending value.
func (s *Service) Check(ctx context.Context, donor, recipient string) (bloodtype.Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "compatibility.Check",
		trace.WithAttributes(
			attribute.String("donor", donor),
			attribute.String("recipient", recipient),
		))
	defer span.End()
	defer s.metrics.ObserveCheck(start)

	result, err := bloodtype.CheckCompatibility(donor, recipient)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid blood type")
		var invalid *bloodtype.InvalidBloodTypeError
		if errors.As(err, &invalid) {
			return bloodtype.Result{}, err
		}
		return bloodtype.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check compatibility")
	}

	span.SetAttributes(
		attribute.Bool("compatible", result.Compatible),
		attribute.String("reason", string(result.Reason)),
	)
	s.metrics.IncrementCheck(result.Compatible, string(result.Reason))
	s.logger.DebugContext(ctx, "compatibility checked",
		"donor", donor,
		"recipient", recipient,
		"compatible", result.Compatible,
		"reason", result.Reason,
	)
	return result, nil
}

// Profile returns the donate/receive lists for a blood type. An unknown type
// is reported as not found.
func (s *Service) Profile(ctx context.Context, raw string) (bloodtype.Profile, error) {
	_, span := s.tracer.Start(ctx, "compatibility.Profile",
		trace.WithAttributes(attribute.String("blood_type", raw)))
	defer span.End()

	bt, err := bloodtype.Parse(raw)
	if err != nil {
		span.SetStatus(codes.Error, "unknown blood type")
		return bloodtype.Profile{}, dErrors.New(dErrors.CodeNotFound, err.Error())
	}
	s.metrics.IncrementProfileLookup(bt.String())
	return bloodtype.ProfileFor(bt), nil
}
