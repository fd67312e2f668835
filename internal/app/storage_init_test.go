package app

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/health"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if deps.managers == nil || deps.partners == nil || deps.sales == nil {
		t.Fatal("repositories should not be nil for memory storage")
	}

	partners, err := deps.partners.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(partners) != 0 {
		t.Fatalf("expected empty store without seed, got %d partners", len(partners))
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}

func TestNewRuntime_SeededMemory(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	rt, err := NewRuntime(context.Background(), cfg, prometheus.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("NewRuntime failed: %v", err)
	}
	defer rt.Close()

	ctx := context.Background()
	if report := rt.Health.Evaluate(ctx); report.Status != health.StatusHealthy {
		t.Fatalf("expected healthy store, got %+v", report)
	}

	session, err := rt.Auth.Authenticate(ctx, DemoLogin, DemoPassword)
	if err != nil {
		t.Fatalf("demo login failed: %v", err)
	}
	if _, err := rt.Auth.Authenticate(ctx, DemoLogin, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := rt.Auth.Authenticate(ctx, DemoLogin, " "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	ctx = domain.ContextWithSession(ctx, session)
	partners, err := rt.Partners.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(partners) == 0 {
		t.Fatal("expected seeded partners")
	}
	for _, p := range partners {
		stats, err := rt.Sales.PartnerStats(ctx, p.ID)
		if err != nil {
			t.Fatalf("stats for %d failed: %v", p.ID, err)
		}
		if !stats.Consistent() {
			t.Fatalf("inconsistent stats for %d: %+v", p.ID, stats)
		}
	}
}
