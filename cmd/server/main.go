// Command server runs the facturación engine with its operational HTTP
// surface: /healthz and /metrics. Business operations (build, sign, transmit)
// are exposed as Go APIs for the surrounding application; this process owns
// the background pieces: session sweep, audit publishing, contingency replay.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"facturador/internal/audit"
	"facturador/internal/contingency"
	contingencymetrics "facturador/internal/contingency/metrics"
	"facturador/internal/mh"
	mhmetrics "facturador/internal/mh/metrics"
	"facturador/internal/platform/config"
	"facturador/internal/platform/httpserver"
	"facturador/internal/platform/logger"
	platformredis "facturador/internal/platform/redis"
	"facturador/internal/session"
	sessionmetrics "facturador/internal/session/metrics"
	"facturador/internal/sign"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// MH protocol client.
	clientOpts := []mh.ClientOption{mh.WithMetrics(mhmetrics.New(registry))}
	if cfg.MHBaseURL != "" {
		clientOpts = append(clientOpts, mh.WithEndpoints(mh.CustomEndpoints(cfg.MHBaseURL)))
	}
	client := mh.NewClient(cfg.Environment, log, clientOpts...)
	engine := sign.NewEngine(log)

	// Optional shared infrastructure.
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var db *sql.DB
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
	}

	// Audit pipeline: Kafka when configured, in-memory otherwise.
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, audit.WithTopic(cfg.AuditTopic))
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		sink = audit.NewMemorySink()
	}
	publisher := audit.NewPublisher(sink, log)

	// Session manager with background sweep.
	sessions := session.NewManager(log,
		session.WithInactivityTTL(cfg.SessionTTL),
		session.WithSweepInterval(cfg.SweepInterval),
		session.WithMetrics(sessionmetrics.New(registry)))
	defer sessions.Close()

	// Contingency queue: postgres > redis > memory.
	var store contingency.Store
	switch {
	case db != nil:
		pg := contingency.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("contingency schema: %v", err)
		}
		store = pg
	case redisClient != nil:
		store = contingency.NewRedisStore(redisClient.Client)
	default:
		store = contingency.NewMemoryStore()
	}
	processor := contingency.NewProcessor(store, engine, client, log,
		contingency.WithMetrics(contingencymetrics.New(registry)),
		contingency.WithAuditPublisher(publisher))

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "postgres unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting facturador (%s environment) on %s", cfg.Environment, cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := publisher.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if cfg.NIT != "" {
		g.Go(func() error {
			return runReplayLoop(ctx, cfg, log, client, engine, sessions, processor)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("shutdown complete")
}
