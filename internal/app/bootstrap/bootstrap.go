package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	activationservice "dttracker/contexts/creator-marketing/activation-service"
	activationpostgres "dttracker/contexts/creator-marketing/activation-service/adapters/postgres"
	activationworkers "dttracker/contexts/creator-marketing/activation-service/application/workers"
	activationerrors "dttracker/contexts/creator-marketing/activation-service/domain/errors"
	walletservice "dttracker/contexts/finance-core/wallet-service"
	walletpostgres "dttracker/contexts/finance-core/wallet-service/adapters/postgres"
	walletapp "dttracker/contexts/finance-core/wallet-service/application"
	walleterrors "dttracker/contexts/finance-core/wallet-service/domain/errors"
	scrapemonitorservice "dttracker/contexts/scrape-ops/scrape-monitor-service"
	scrapepostgres "dttracker/contexts/scrape-ops/scrape-monitor-service/adapters/postgres"
	scrapeworkers "dttracker/contexts/scrape-ops/scrape-monitor-service/application/workers"
	"dttracker/internal/platform/config"
	"dttracker/internal/platform/db"
	"dttracker/internal/platform/httpserver"
	"dttracker/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres

	expirer          activationworkers.InvitationExpirer
	outboxRelay      activationworkers.OutboxRelay
	eventConsumer    activationworkers.InvitationEventConsumer
	cooldownReleaser scrapeworkers.CooldownReleaser
	runRetention     scrapeworkers.RunRetention

	enableExpirer          bool
	enableOutboxRelay      bool
	enableCooldownReleaser bool
	enableRunRetention     bool

	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	walletRepo := walletpostgres.NewRepository(pg.DB, logger)
	walletModule := walletservice.NewModule(walletservice.Dependencies{
		Repo:   walletRepo,
		Clock:  walletpostgres.SystemClock{},
		IDGen:  walletpostgres.UUIDGenerator{},
		Logger: logger,
	})

	activationRepo := activationpostgres.NewRepository(pg.DB, logger)
	activationModule := activationservice.NewModule(activationservice.Dependencies{
		Activations:    activationRepo,
		Invitations:    activationRepo,
		Wallet:         walletGateway{service: walletModule.Service},
		Outbox:         activationRepo,
		Idempotency:    activationRepo,
		Notifications:  activationRepo,
		Clock:          activationpostgres.SystemClock{},
		IDGenerator:    activationpostgres.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})

	scrapeRepo := scrapepostgres.NewRepository(pg.DB, logger)
	scrapeModule := scrapemonitorservice.NewModule(scrapemonitorservice.Dependencies{
		Jobs:        scrapeRepo,
		Runs:        scrapeRepo,
		Clock:       scrapepostgres.SystemClock{},
		IDGenerator: scrapepostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(activationModule, walletModule, scrapeModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	activationRepo := activationpostgres.NewRepository(pg.DB, logger)
	scrapeRepo := scrapepostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres: pg,
		expirer: activationworkers.InvitationExpirer{
			Invitations: activationRepo,
			Clock:       activationpostgres.SystemClock{},
			Logger:      logger,
		},
		outboxRelay: activationworkers.OutboxRelay{
			Outbox:    activationRepo,
			Publisher: kafka,
			Clock:     activationpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		eventConsumer: activationworkers.InvitationEventConsumer{
			Subscriber:    kafka,
			Notifications: activationRepo,
			Dedup:         activationRepo,
			Clock:         activationpostgres.SystemClock{},
			IDGen:         activationpostgres.UUIDGenerator{},
			Disabled:      !cfg.EnableInvitationEventConsumer,
			Logger:        logger,
		},
		cooldownReleaser: scrapeworkers.CooldownReleaser{
			Jobs:   scrapeRepo,
			Clock:  scrapepostgres.SystemClock{},
			Logger: logger,
		},
		runRetention: scrapeworkers.RunRetention{
			Runs:   scrapeRepo,
			Clock:  scrapepostgres.SystemClock{},
			Logger: logger,
		},
		enableExpirer:          cfg.EnableInvitationExpirer,
		enableOutboxRelay:      cfg.EnableOutboxRelay,
		enableCooldownReleaser: cfg.EnableCooldownReleaser,
		enableRunRetention:     cfg.EnableScrapeRunRetention,
		pollInterval:           cfg.WorkerPollInterval,
		logger:                 logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	if err := w.eventConsumer.Start(ctx); err != nil {
		return err
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.enableExpirer {
			if err := w.expirer.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableOutboxRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableCooldownReleaser {
			if err := w.cooldownReleaser.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.enableRunRetention {
			if err := w.runRetention.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// walletGateway bridges the activation context to the wallet service,
// translating wallet sentinels into the activation error surface.
type walletGateway struct {
	service walletapp.Service
}

func (g walletGateway) LockFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	return g.mapErr(g.service.LockFunds(ctx, brandID, amount, referenceID))
}

func (g walletGateway) ReleaseFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	return g.mapErr(g.service.ReleaseFunds(ctx, brandID, amount, referenceID))
}

func (g walletGateway) RefundFunds(ctx context.Context, brandID string, amount float64, referenceID string) error {
	return g.mapErr(g.service.RefundFunds(ctx, brandID, amount, referenceID))
}

func (g walletGateway) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, walleterrors.ErrInsufficientFunds),
		errors.Is(err, walleterrors.ErrWalletNotFound):
		return activationerrors.ErrInsufficientFunds
	default:
		return err
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
