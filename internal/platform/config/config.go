package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"lahu/pkg/platform/middleware/metadata"
	platformstrings "lahu/pkg/platform/strings"
)

// Server captures process level configuration. Every field has a development
// default so `go run ./cmd/server` works with no environment at all.
type Server struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	CORSOrigins     []string
	// TrustedProxies lists CIDRs or addresses whose forwarding headers are
	// believed. Empty means the socket peer is always the client.
	TrustedProxies  []string

	Auth      AuthConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Seed      SeedConfig
	RateLimit RateLimitConfig
}

// AuthConfig controls token issuance.
type AuthConfig struct {
	JWTSigningKey  string
	JWTIssuer      string
	AccessTokenTTL time.Duration
}

// DatabaseConfig selects Postgres persistence; an empty URL keeps every store
// in memory.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig backs the token revocation list; an empty URL keeps it in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig routes audit events to a topic; no brokers keeps them in memory.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// SeedConfig optionally bootstraps an admin account at start-up.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// RateLimitConfig sets per-IP request budgets per minute. Counters live in
// Redis when it is configured.
type RateLimitConfig struct {
	Enabled          bool
	AuthPerMinute    int
	DefaultPerMinute int
}

const defaultSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds the config from environment variables so main stays lean.
// Malformed numeric or duration values fall back to defaults; Validate
// reports them.
func FromEnv() Server {
	return Server{
		Addr:            getenv("LAHU_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MetricsEnabled:  getenv("METRICS_ENABLED", "true") == "true",
		CORSOrigins:     getenvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:  getenvList("TRUSTED_PROXIES", nil),
		Auth: AuthConfig{
			JWTSigningKey:  getenv("JWT_SIGNING_KEY", defaultSigningKey),
			JWTIssuer:      getenv("JWT_ISSUER", "lahu"),
			AccessTokenTTL: getenvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:    getenvList("KAFKA_BROKERS", nil),
			AuditTopic: getenv("KAFKA_AUDIT_TOPIC", "lahu.audit"),
		},
		Seed: SeedConfig{
			AdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
			AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:          getenv("RATE_LIMIT_ENABLED", "true") == "true",
			AuthPerMinute:    getenvInt("RATE_LIMIT_AUTH_PER_MINUTE", 10),
			DefaultPerMinute: getenvInt("RATE_LIMIT_DEFAULT_PER_MINUTE", 300),
		},
	}
}

// Validate reports settings that would make the server unsafe or unusable.
func (s Server) Validate() error {
	var errs []error
	if s.Addr == "" {
		errs = append(errs, errors.New("LAHU_ADDR must not be empty"))
	}
	if len(s.Auth.JWTSigningKey) < 16 {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be at least 16 bytes"))
	}
	if s.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", s.Auth.AccessTokenTTL))
	}
	if s.RateLimit.Enabled && (s.RateLimit.AuthPerMinute <= 0 || s.RateLimit.DefaultPerMinute <= 0) {
		errs = append(errs, errors.New("rate limits must be positive when RATE_LIMIT_ENABLED is true"))
	}
	if _, err := metadata.ParseTrustedProxies(s.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
	}
	if (s.Seed.AdminEmail == "") != (s.Seed.AdminPassword == "") {
		errs = append(errs, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

// UsingDefaultSigningKey is true when JWT_SIGNING_KEY was not provided.
func (s Server) UsingDefaultSigningKey() bool {
	return s.Auth.JWTSigningKey == defaultSigningKey
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return platformstrings.SplitList(v, ",")
}
