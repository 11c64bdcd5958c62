package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/access"
	"backoffice/internal/audit"
	auditkafka "backoffice/internal/audit/store/kafka"
	auditmemory "backoffice/internal/audit/store/memory"
	auditpostgres "backoffice/internal/audit/store/postgres"
	"backoffice/internal/backend"
	"backoffice/internal/clientstatus"
	"backoffice/internal/navigation"
	"backoffice/internal/payments"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/httpserver"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/platform/redis"
	"backoffice/internal/session"
	httptransport "backoffice/internal/transport/http"
	"backoffice/internal/verification/workflow"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.ServiceName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("gateway stopped with error", "error", err)
		os.Exit(1)
	}
}

// run wires the gateway and blocks until ctx is cancelled or a component fails.
func run(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) error {
	reg := metrics.NewRegistry()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var readiness []httptransport.ReadinessCheck
	if redisClient != nil {
		defer redisClient.Close()
		readiness = append(readiness, redisClient.Health)
	}

	bank, err := backend.New(cfg.Backend.BaseURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout}),
		backend.WithLogger(log),
	)
	if err != nil {
		return err
	}

	auditStore, closeAudit, err := newAuditStore(ctx, cfg.Audit, &readiness)
	if err != nil {
		return err
	}
	defer closeAudit()
	inbox := make(chan audit.Event, cfg.Audit.BufferSize)
	publisher := audit.NewPublisher(auditStore, audit.WithInbox(inbox))
	worker := audit.NewWorker(auditStore, inbox, log)

	var sessionStore session.Store = session.NewInMemoryStore()
	if cfg.Session.Store == config.StoreRedis {
		sessionStore = session.NewRedisStore(redisClient.Client)
	}
	sessions, err := session.NewService(bank, session.NewHolder(sessionStore),
		session.WithLogger(log),
		session.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	var statusCache clientstatus.Cache = clientstatus.NewInMemoryCache()
	if cfg.ClientStatus.Store == config.StoreRedis {
		statusCache = clientstatus.NewRedisCache(redisClient.Client)
	}
	statuses, err := clientstatus.New(bank, statusCache,
		clientstatus.WithTTL(cfg.ClientStatus.TTL),
		clientstatus.WithLogger(log),
		clientstatus.WithMetrics(clientstatus.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	guard, err := access.NewGuard(statuses,
		access.WithLogger(log),
		access.WithMetrics(access.NewMetrics(reg)),
		access.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}
	menus, err := navigation.NewBuilder(statuses, log)
	if err != nil {
		return err
	}
	verifications, err := workflow.New(bank, statuses,
		workflow.WithLogger(log),
		workflow.WithMetrics(workflow.NewMetrics(reg)),
		workflow.WithAuditPublisher(publisher),
		workflow.WithDocumentConcurrency(cfg.Verification.DocumentConcurrency),
	)
	if err != nil {
		return err
	}
	approvals, err := payments.New(bank,
		payments.WithLogger(log),
		payments.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	router, err := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		HTTPMetrics:    metrics.NewHTTP(reg),
		MetricsHandler: metrics.Handler(reg),
		Sessions:       sessions,
		Guard:          guard,
		Navigation:     menus,
		Verifications:  verifications,
		Payments:       approvals,
		Audit:          publisher,
		Workspace:      bank.WorkspaceProxy("/client-user", sessionToken, log),
		Readiness:      readiness,
		CookieName:     cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
	})
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		log.Info("starting backoffice gateway", "addr", srv.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newAuditStore opens the configured audit sink. The returned func releases
// its connections.
func newAuditStore(ctx context.Context, cfg config.AuditConfig, readiness *[]httptransport.ReadinessCheck) (audit.Store, func(), error) {
	switch cfg.Sink {
	case config.SinkPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit database: %w", err)
		}
		store := auditpostgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare audit schema: %w", err)
		}
		*readiness = append(*readiness, pool.Ping)
		return store, pool.Close, nil
	case config.SinkKafka:
		client, err := auditkafka.NewClient(cfg.KafkaBrokers)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit producer: %w", err)
		}
		*readiness = append(*readiness, client.Ping)
		return auditkafka.New(client, cfg.KafkaTopic), client.Close, nil
	default:
		return auditmemory.NewInMemoryStore(), func() {}, nil
	}
}

func sessionToken(r *http.Request) string {
	snap := session.FromContext(r.Context())
	if snap == nil {
		return ""
	}
	return snap.Token
}
