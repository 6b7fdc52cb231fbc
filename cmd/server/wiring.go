package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"lahu/internal/audit"
	"lahu/internal/auth/service"
	"lahu/internal/auth/store/revocation"
	"lahu/internal/auth/store/user"
	"lahu/internal/bloodrequest"
	"lahu/internal/donation"
	donationAdapters "lahu/internal/donation/adapters"
	"lahu/internal/donor"
	"lahu/internal/platform/config"
	"lahu/internal/platform/postgres"
	"lahu/internal/platform/redis"
	"lahu/internal/ratelimit"
	httptransport "lahu/internal/transport/http"
	authmw "lahu/pkg/platform/middleware/auth"
	txcontext "lahu/pkg/platform/tx"
)

const (
	auditTopicPartitions  = 3
	auditTopicReplication = 1
	auditBreakerThreshold = 5
	auditBreakerCooldown  = 30 * time.Second
	kafkaFlushTimeout     = 5 * time.Second
)

// infra holds the optional backing services. A nil field means the
// dependency is not configured and in-memory fallbacks are used.
type infra struct {
	db    *sql.DB
	redis *redis.Client
	kafka *kgo.Client
}

func openInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	in := &infra{}

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	in.db = db

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		in.Close(log)
		return nil, err
	}
	in.redis = rdb

	if len(cfg.Kafka.Brokers) > 0 {
		client, err := audit.NewKafkaClient(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			in.Close(log)
			return nil, err
		}
		if err := audit.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, auditTopicPartitions, auditTopicReplication); err != nil {
			// The broker may still come up; the breaker sheds load until it does.
			log.WarnContext(ctx, "audit topic not ensured", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
		in.kafka = client
	}
	return in, nil
}

func (in *infra) HealthChecks() map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if in.db != nil {
		checks["postgres"] = in.db.PingContext
	}
	if in.redis != nil {
		checks["redis"] = in.redis.Health
	}
	if in.kafka != nil {
		checks["kafka"] = in.kafka.Ping
	}
	return checks
}

func (in *infra) Close(log *slog.Logger) {
	if in.kafka != nil {
		ctx, cancel := context.WithTimeout(context.Background(), kafkaFlushTimeout)
		if err := in.kafka.Flush(ctx); err != nil {
			log.Warn("kafka flush failed", "error", err)
		}
		cancel()
		in.kafka.Close()
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			log.Warn("redis close failed", "error", err)
		}
	}
	if in.db != nil {
		if err := in.db.Close(); err != nil {
			log.Warn("postgres close failed", "error", err)
		}
	}
}

type userStore interface {
	service.UserStore
	donationAdapters.AuthUserStore
}

type stores struct {
	users     userStore
	donors    donor.Store
	requests  bloodrequest.Store
	donations donation.Store
	tx        txcontext.Runner
}

func newStores(db *sql.DB) stores {
	if db == nil {
		return stores{
			users:     user.New(),
			donors:    donor.NewInMemoryStore(),
			requests:  bloodrequest.NewInMemoryStore(),
			donations: donation.NewInMemoryStore(),
			tx:        txcontext.NoopRunner{},
		}
	}
	return stores{
		users:     user.NewPostgres(db),
		donors:    donor.NewPostgresStore(db),
		requests:  bloodrequest.NewPostgresStore(db),
		donations: donation.NewPostgresStore(db),
		tx:        txcontext.NewPostgresRunner(db),
	}
}

type revocationList interface {
	service.TokenRevoker
	authmw.TokenRevocationChecker
}

func newRevocationList(rdb *redis.Client) revocationList {
	if rdb == nil {
		return revocation.NewInMemoryTRL()
	}
	return revocation.NewRedisTRL(rdb.Client)
}

func newRateLimitStore(rdb *redis.Client) ratelimit.Store {
	if rdb == nil {
		return ratelimit.NewInMemoryStore()
	}
	return ratelimit.NewRedisStore(rdb.Client)
}

// newAuditPublisher always keeps an in-memory trail and, when Kafka is
// configured, forwards through a circuit breaker so a broker outage cannot
// stall requests.
func newAuditPublisher(client *kgo.Client, topic string, log *slog.Logger) *audit.Publisher {
	opts := []audit.Option{
		audit.WithLogger(log),
		audit.WithSink(audit.NewInMemoryStore()),
	}
	if client != nil {
		sink := audit.NewKafkaSink(client, topic)
		opts = append(opts, audit.WithSink(audit.NewBreakerSink(sink, auditBreakerThreshold, auditBreakerCooldown)))
	}
	return audit.NewPublisher(opts...)
}
