package postgres

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

func TestManagerRepository_PostgresLookup(t *testing.T) {
	provider := openPostgresProviderForIntegrationTest(t)
	repo := NewManagerRepository(provider)

	digest := md5.Sum([]byte("secret"))
	execForIntegrationTest(t, provider, `
		INSERT INTO managers (login, password_hash, full_name, role, is_active)
		VALUES ('m1', $1, 'Менеджер Один', 'manager', TRUE),
		       ('old', $1, 'Уволенный', 'manager', FALSE)
	`, hex.EncodeToString(digest[:]))

	m, err := repo.FindActiveByLogin(context.Background(), "m1")
	if err != nil {
		t.Fatalf("find m1: %v", err)
	}
	if m.PasswordHash != hex.EncodeToString(digest[:]) || !m.Active {
		t.Fatalf("unexpected manager: %+v", m)
	}

	if _, err := repo.FindActiveByLogin(context.Background(), "M1"); !errors.Is(err, domain.ErrManagerNotFound) {
		t.Fatalf("login must be case-sensitive, got %v", err)
	}
	if _, err := repo.FindActiveByLogin(context.Background(), "old"); !errors.Is(err, domain.ErrManagerNotFound) {
		t.Fatalf("inactive manager must not be found, got %v", err)
	}
}

func TestPartnerRepository_PostgresAddListUpdate(t *testing.T) {
	provider := openPostgresProviderForIntegrationTest(t)
	repo := NewPartnerRepository(provider)
	ctx := context.Background()

	execForIntegrationTest(t, provider, `INSERT INTO type_partners (type_name) VALUES ('ЗАО'), ('ООО')`)

	types, err := repo.ListTypes(ctx)
	if err != nil {
		t.Fatalf("list types: %v", err)
	}
	if len(types) != 2 || types[1].Name != "ООО" {
		t.Fatalf("unexpected types: %+v", types)
	}

	fields := domain.PartnerFields{
		Name: "бета", TypeID: domain.TypeIDPtr(types[1].ID), Director: "Петров",
		Email: "b@b.ru", INN: "222", Rating: 5,
	}
	id, err := repo.Add(ctx, fields)
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}
	noType := fields
	noType.Name, noType.TypeID = "Альфа", nil
	if _, err := repo.Add(ctx, noType); err != nil {
		t.Fatalf("add partner without type: %v", err)
	}

	partners, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list partners: %v", err)
	}
	if len(partners) != 2 || partners[0].Name != "Альфа" || partners[1].Name != "бета" {
		t.Fatalf("partners must be sorted by name ignoring case: %+v", partners)
	}
	if partners[1].TypeName != "ООО" || partners[0].DisplayTypeName() != domain.UnknownTypeName {
		t.Fatalf("unexpected type names: %+v", partners)
	}

	again, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list partners again: %v", err)
	}
	for i := range partners {
		if partners[i].ID != again[i].ID {
			t.Fatalf("list order must be stable: %+v vs %+v", partners, again)
		}
	}

	fields.Rating = 8
	if err := repo.Update(ctx, id, fields); err != nil {
		t.Fatalf("update partner: %v", err)
	}
	updated, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get partner: %v", err)
	}
	if updated.Rating != 8 {
		t.Fatalf("expected rating 8 after update, got %d", updated.Rating)
	}

	if err := repo.Update(ctx, id+1000, fields); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestPartnerRepository_PostgresFailedWriteLeavesStateIntact(t *testing.T) {
	provider := openPostgresProviderForIntegrationTest(t)
	repo := NewPartnerRepository(provider)
	ctx := context.Background()

	fields := domain.PartnerFields{Name: "Гамма", Director: "Сидоров", Email: "g@g.ru", INN: "333", Rating: 5}
	id, err := repo.Add(ctx, fields)
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}
	before, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list before: %v", err)
	}

	bad := fields
	bad.Rating = 11
	if _, err := repo.Add(ctx, bad); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on rating check, got %v", err)
	}
	if err := repo.Update(ctx, id, bad); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence on update, got %v", err)
	}
	bad.Rating = 5
	bad.TypeID = domain.TypeIDPtr(777)
	if _, err := repo.Add(ctx, bad); !errors.Is(err, domain.ErrPartnerTypeNotFound) {
		t.Fatalf("expected ErrPartnerTypeNotFound, got %v", err)
	}

	after, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if len(after) != len(before) || after[0].Rating != before[0].Rating {
		t.Fatalf("failed writes must not change the store: before=%+v after=%+v", before, after)
	}
	if stats := provider.Stats(); stats.InUse != 0 {
		t.Fatalf("connections leaked: %+v", stats)
	}
}

func TestSalesRepository_PostgresStats(t *testing.T) {
	provider := openPostgresProviderForIntegrationTest(t)
	partners := NewPartnerRepository(provider)
	sales := NewSalesRepository(provider)
	ctx := context.Background()

	base := domain.PartnerFields{Director: "Д", Email: "e@e.ru", INN: "1", Rating: 3}
	withSales, noSales := base, base
	withSales.Name, noSales.Name = "С продажами", "Без продаж"
	id, err := partners.Add(ctx, withSales)
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}
	emptyID, err := partners.Add(ctx, noSales)
	if err != nil {
		t.Fatalf("add partner: %v", err)
	}

	execForIntegrationTest(t, provider, `INSERT INTO products (name) VALUES ('Паркет'), ('Ламинат'), ('Плинтус')`)
	execForIntegrationTest(t, provider, `
		INSERT INTO sales_history (partner_id, product_id, quantity, total_sale_amount) VALUES
			($1, 1, 10, 1000.00),
			($1, 2, 5, 1500.50),
			($1, 1, 2, 500.50),
			($1, 3, 7, 1500.50)
	`, id)

	stats, err := sales.PartnerStats(ctx, id)
	if err != nil {
		t.Fatalf("partner stats: %v", err)
	}
	if stats.TotalQuantity != 24 || !stats.TotalAmount.Equal(decimal.RequireFromString("4501.5")) {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if !stats.Consistent() {
		t.Fatalf("totals must equal breakdown: %+v", stats)
	}
	// Паркет 1500.50 (id 1), Ламинат 1500.50 (id 2), Плинтус 1500.50 (id 3): равные суммы по ID.
	for i, want := range []int64{1, 2, 3} {
		if stats.Products[i].ProductID != want {
			t.Fatalf("unexpected breakdown order: %+v", stats.Products)
		}
	}

	empty, err := sales.PartnerStats(ctx, emptyID)
	if err != nil {
		t.Fatalf("partner stats without sales: %v", err)
	}
	if empty.TotalQuantity != 0 || !empty.TotalAmount.IsZero() || len(empty.Products) != 0 {
		t.Fatalf("expected zero stats, got %+v", empty)
	}
}
