package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"lahu/pkg/requestcontext"
)

// Sink persists or forwards audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher fans events out to every configured sink. Emission is best
// effort: sink failures are logged and returned, and callers only log them.
type Publisher struct {
	sinks  []Sink
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Publisher)

func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(opts ...Option) *Publisher {
	p := &Publisher{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enriches the event with request metadata and hands it to each sink.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = describeUserAgent(requestcontext.UserAgent(ctx))
	}

	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink failed",
				"action", event.Action,
				"sink", fmt.Sprintf("%T", sink),
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// describeUserAgent condenses a raw User-Agent header to "Browser Version (OS)".
func describeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		name, _ := ua.Browser()
		return "bot: " + name
	}
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	desc := name
	if version != "" {
		desc += " " + version
	}
	if os := ua.OS(); os != "" {
		desc += " (" + os + ")"
	}
	return desc
}
