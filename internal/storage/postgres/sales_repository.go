package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

type salesRepository struct {
	provider *Provider
}

// NewSalesRepository создаёт PostgreSQL-реализацию SalesRepository.
func NewSalesRepository(provider *Provider) domain.SalesRepository {
	return &salesRepository{provider: provider}
}

// PartnerStats выполняет оба запроса в одной read-only транзакции, чтобы итоги
// и разбивка были посчитаны по одному снимку.
func (r *salesRepository) PartnerStats(ctx context.Context, partnerID int64) (domain.PartnerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	stats := domain.EmptyPartnerStats()
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := withTx(ctx, r.provider, opts, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(quantity), 0)::BIGINT,
			       COALESCE(SUM(total_sale_amount), 0)
			FROM sales_history
			WHERE partner_id = $1
		`, partnerID).Scan(&stats.TotalQuantity, &stats.TotalAmount); err != nil {
			return fmt.Errorf("select sales totals: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT pr.id, pr.name,
			       SUM(sh.quantity)::BIGINT AS quantity,
			       SUM(sh.total_sale_amount) AS amount
			FROM sales_history sh
			JOIN products pr ON pr.id = sh.product_id
			WHERE sh.partner_id = $1
			GROUP BY pr.id, pr.name
			ORDER BY amount DESC, pr.id ASC
		`, partnerID)
		if err != nil {
			return fmt.Errorf("query product breakdown: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var ps domain.ProductSales
			if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.Quantity, &ps.Amount); err != nil {
				return fmt.Errorf("scan product breakdown: %w", err)
			}
			stats.Products = append(stats.Products, ps)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate product breakdown: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.EmptyPartnerStats(), readError("partner stats", err)
	}

	return stats, nil
}

var _ domain.SalesRepository = (*salesRepository)(nil)
