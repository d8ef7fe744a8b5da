package config

import (
	"os"
	"time"

	"facturador/internal/mh"
	pstrings "facturador/pkg/platform/strings"
)

// Config captures process configuration. Everything comes from the
// environment so main stays lean.
type Config struct {
	Addr string

	// MH environment: "test" (default) or "production".
	Environment mh.Environment

	// Optional MH base URL override, used to point at a stub server.
	MHBaseURL string

	RedisURL     string
	PostgresDSN  string
	KafkaBrokers []string
	AuditTopic   string

	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Issuer credentials for the background contingency replayer. When NIT
	// is empty the process runs without a replay loop and the embedding
	// application drives replays itself.
	NIT          string
	Password     string
	CertPath     string
	CertPassword string

	ReplayInterval time.Duration

	// How many queued documents one replay pass claims.
	ReplayBatchSize int
}

// FromEnv builds a Config from FACTURADOR_* environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("FACTURADOR_ADDR", ":8080"),
		Environment:     mh.EnvTest,
		MHBaseURL:       os.Getenv("FACTURADOR_MH_BASE_URL"),
		RedisURL:        os.Getenv("FACTURADOR_REDIS_URL"),
		PostgresDSN:     os.Getenv("FACTURADOR_POSTGRES_DSN"),
		AuditTopic:      envOr("FACTURADOR_AUDIT_TOPIC", "facturador.audit"),
		SessionTTL:      durationOr("FACTURADOR_SESSION_TTL", 24*time.Hour),
		SweepInterval:   durationOr("FACTURADOR_SWEEP_INTERVAL", 15*time.Minute),
		NIT:             os.Getenv("FACTURADOR_MH_NIT"),
		Password:        os.Getenv("FACTURADOR_MH_PASSWORD"),
		CertPath:        os.Getenv("FACTURADOR_CERT_PATH"),
		CertPassword:    os.Getenv("FACTURADOR_CERT_PASSWORD"),
		ReplayInterval:  durationOr("FACTURADOR_REPLAY_INTERVAL", 5*time.Minute),
		ReplayBatchSize: 10,
	}
	if os.Getenv("FACTURADOR_MH_ENV") == "production" {
		cfg.Environment = mh.EnvProduction
	}
	if brokers := os.Getenv("FACTURADOR_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = pstrings.SplitHosts(brokers)
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
