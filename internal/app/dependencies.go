package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/health"
	"github.com/vladislavdragonenkov/partners/internal/metrics"
	"github.com/vladislavdragonenkov/partners/internal/service/auth"
	"github.com/vladislavdragonenkov/partners/internal/service/partners"
	"github.com/vladislavdragonenkov/partners/internal/service/sales"
	"github.com/vladislavdragonenkov/partners/internal/storage/memory"
	"github.com/vladislavdragonenkov/partners/internal/storage/postgres"
	"github.com/vladislavdragonenkov/partners/internal/version"
)

// Runtime содержит сервисы, собранные под выбранное хранилище.
type Runtime struct {
	Auth     *auth.Service
	Partners *partners.Service
	Sales    *sales.Service
	Health   *health.Reporter
	Metrics  *metrics.StoreMetrics

	closeFn func() error
}

// Close освобождает ресурсы хранилища.
func (r *Runtime) Close() error {
	if r == nil || r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// NewRuntime собирает зависимости по конфигурации. registerer может быть nil.
func NewRuntime(ctx context.Context, cfg Config, registerer prometheus.Registerer, logger *log.Entry) (*Runtime, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.NewStoreMetricsWithRegisterer(registerer)
	reporter := health.NewReporter(version.Get().Version)
	reporter.RegisterChecker("store", health.NewSimpleChecker("store", deps.ping))

	return &Runtime{
		Auth:     auth.NewService(deps.managers, auth.DetectingHasher{}, logger.WithField("component", "auth"), m),
		Partners: partners.NewService(deps.partners, logger.WithField("component", "partners"), m),
		Sales:    sales.NewService(deps.sales, logger.WithField("component", "sales"), m),
		Health:   reporter,
		Metrics:  m,
		closeFn:  deps.close,
	}, nil
}

type runtimeDependencies struct {
	managers domain.ManagerRepository
	partners domain.PartnerRepository
	sales    domain.SalesRepository
	ping     func(ctx context.Context) error
	close    func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case "", StorageDriverMemory:
		store := memory.NewStore()
		if cfg.SeedDemoData {
			if err := SeedDemoData(store); err != nil {
				return nil, fmt.Errorf("seed demo data: %w", err)
			}
		}
		logger.WithField("storage", StorageDriverMemory).Debug("storage initialized")
		return &runtimeDependencies{
			managers: memory.NewManagerRepository(store),
			partners: memory.NewPartnerRepository(store),
			sales:    memory.NewSalesRepository(store),
			ping:     func(context.Context) error { return nil },
			close:    func() error { return nil },
		}, nil

	case StorageDriverPostgres:
		provider, err := newPostgresProvider(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := provider.MigrateUp(ctx, 0); err != nil {
				_ = provider.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		logger.WithFields(log.Fields{
			"storage":   StorageDriverPostgres,
			"pool_size": cfg.Postgres.PoolSize,
		}).Debug("storage initialized")
		return &runtimeDependencies{
			managers: postgres.NewManagerRepository(provider),
			partners: postgres.NewPartnerRepository(provider),
			sales:    postgres.NewSalesRepository(provider),
			ping:     provider.Ping,
			close:    provider.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newPostgresProvider(cfg Config) (*postgres.Provider, error) {
	if cfg.PostgresDSN != "" {
		return postgres.NewProviderFromDSN(cfg.PostgresDSN, cfg.Postgres.PoolSize, cfg.Postgres.ConnectTimeout)
	}
	if cfg.Postgres == (postgres.ConnConfig{}) {
		return nil, errors.New("postgres storage requires connection settings or dsn")
	}
	return postgres.NewProvider(cfg.Postgres)
}
