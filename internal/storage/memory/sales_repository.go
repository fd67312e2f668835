package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

type salesRepositoryInMemory struct {
	store *Store
}

// NewSalesRepository возвращает in-memory репозиторий истории продаж поверх store.
func NewSalesRepository(store *Store) domain.SalesRepository {
	return &salesRepositoryInMemory{store: store}
}

// PartnerStats считает итоги и разбивку под одной блокировкой чтения.
func (r *salesRepositoryInMemory) PartnerStats(_ context.Context, partnerID int64) (domain.PartnerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := domain.EmptyPartnerStats()
	byProduct := make(map[int64][]domain.SalesRecord)
	for _, rec := range r.store.sales {
		if rec.PartnerID != partnerID {
			continue
		}
		stats.TotalQuantity += rec.Quantity
		byProduct[rec.ProductID] = append(byProduct[rec.ProductID], rec)
	}

	all := make([]domain.SalesRecord, 0)
	for productID, records := range byProduct {
		line := domain.ProductSales{
			ProductID:   productID,
			ProductName: r.store.products[productID].Name,
			Amount:      sumAmounts(records),
		}
		for _, rec := range records {
			line.Quantity += rec.Quantity
		}
		stats.Products = append(stats.Products, line)
		all = append(all, records...)
	}
	stats.TotalAmount = sumAmounts(all)

	sort.Slice(stats.Products, func(i, j int) bool {
		if cmp := stats.Products[i].Amount.Cmp(stats.Products[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return stats.Products[i].ProductID < stats.Products[j].ProductID
	})

	return stats, nil
}

var _ domain.SalesRepository = (*salesRepositoryInMemory)(nil)
