package sales

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/metrics"
)

const operationStats = "sales.partner_stats"

// Service считает статистику продаж партнёра.
type Service struct {
	repo    domain.SalesRepository
	logger  *log.Entry
	metrics *metrics.StoreMetrics
}

// NewService создаёт сервис статистики продаж.
func NewService(repo domain.SalesRepository, logger *log.Entry, m *metrics.StoreMetrics) *Service {
	if logger == nil {
		logger = log.WithField("component", "sales")
	}
	return &Service{repo: repo, logger: logger, metrics: m}
}

// PartnerStats возвращает итоги и разбивку по продуктам. Партнёр без продаж
// получает нулевые итоги и пустую разбивку; ошибка чтения возвращается явно.
func (s *Service) PartnerStats(ctx context.Context, partnerID int64) (domain.PartnerStats, error) {
	start := time.Now()
	if partnerID <= 0 {
		s.metrics.ObserveOperation(operationStats, metrics.ResultRejected, time.Since(start))
		return domain.EmptyPartnerStats(), fmt.Errorf("%w: partner id must be positive", domain.ErrValidation)
	}

	logger := s.logger.WithField("partner_id", partnerID)
	stats, err := s.repo.PartnerStats(ctx, partnerID)
	if err != nil {
		s.metrics.ObserveOperation(operationStats, metrics.ResultError, time.Since(start))
		logger.WithError(err).Error("partner stats read failed")
		return domain.EmptyPartnerStats(), fmt.Errorf("partner %d stats: %w", partnerID, err)
	}
	if stats.Products == nil {
		stats.Products = []domain.ProductSales{}
	}

	if !stats.Consistent() {
		qty, amount := stats.BreakdownTotals()
		logger.WithFields(log.Fields{
			"total_quantity":     stats.TotalQuantity,
			"total_amount":       stats.TotalAmount.String(),
			"breakdown_quantity": qty,
			"breakdown_amount":   amount.String(),
		}).Warn("partner totals do not match product breakdown")
	}

	s.metrics.ObserveOperation(operationStats, metrics.ResultOK, time.Since(start))
	return stats, nil
}
