package partners

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/metrics"
)

// Service — прикладной слой над PartnerRepository: проверка полей перед записью,
// журналирование и метрики.
type Service struct {
	repo    domain.PartnerRepository
	logger  *log.Entry
	metrics *metrics.StoreMetrics
}

// NewService создаёт сервис партнёров.
func NewService(repo domain.PartnerRepository, logger *log.Entry, m *metrics.StoreMetrics) *Service {
	if logger == nil {
		logger = log.WithField("component", "partners")
	}
	return &Service{repo: repo, logger: logger, metrics: m}
}

// List возвращает партнёров для таблицы. Ошибка чтения не маскируется пустым списком.
func (s *Service) List(ctx context.Context) ([]domain.Partner, error) {
	start := time.Now()
	partners, err := s.repo.List(ctx)
	s.observe(ctx, "partners.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	return partners, nil
}

// Types возвращает справочник типов партнёров.
func (s *Service) Types(ctx context.Context) ([]domain.PartnerType, error) {
	start := time.Now()
	types, err := s.repo.ListTypes(ctx)
	s.observe(ctx, "partners.types", start, err)
	if err != nil {
		return nil, fmt.Errorf("list partner types: %w", err)
	}
	return types, nil
}

// Get возвращает партнёра для формы редактирования.
func (s *Service) Get(ctx context.Context, id int64) (domain.Partner, error) {
	if id <= 0 {
		return domain.Partner{}, fmt.Errorf("%w: partner id must be positive", domain.ErrValidation)
	}
	start := time.Now()
	p, err := s.repo.Get(ctx, id)
	s.observe(ctx, "partners.get", start, err)
	if err != nil {
		return domain.Partner{}, fmt.Errorf("get partner %d: %w", id, err)
	}
	return p, nil
}

// Add проверяет поля и добавляет партнёра.
func (s *Service) Add(ctx context.Context, fields domain.PartnerFields) (int64, error) {
	start := time.Now()
	fields = fields.Normalize()
	if err := domain.ValidatePartnerFields(fields); err != nil {
		s.observe(ctx, "partners.add", start, err)
		return 0, err
	}

	id, err := s.repo.Add(ctx, fields)
	s.observe(ctx, "partners.add", start, err)
	if err != nil {
		return 0, fmt.Errorf("add partner %q: %w", fields.Name, err)
	}
	s.entry(ctx).WithFields(log.Fields{"partner_id": id, "name": fields.Name}).Info("partner added")
	return id, nil
}

// Update проверяет поля и полностью заменяет данные партнёра.
func (s *Service) Update(ctx context.Context, id int64, fields domain.PartnerFields) error {
	start := time.Now()
	if id <= 0 {
		err := fmt.Errorf("%w: partner id must be positive", domain.ErrValidation)
		s.observe(ctx, "partners.update", start, err)
		return err
	}
	fields = fields.Normalize()
	if err := domain.ValidatePartnerFields(fields); err != nil {
		s.observe(ctx, "partners.update", start, err)
		return err
	}

	err := s.repo.Update(ctx, id, fields)
	s.observe(ctx, "partners.update", start, err)
	if err != nil {
		return fmt.Errorf("update partner %d: %w", id, err)
	}
	s.entry(ctx).WithField("partner_id", id).Info("partner updated")
	return nil
}

func (s *Service) entry(ctx context.Context) *log.Entry {
	if session, ok := domain.SessionFromContext(ctx); ok {
		return s.logger.WithFields(log.Fields{
			"manager":    session.Manager.Login,
			"session_id": session.ID,
		})
	}
	return s.logger
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation), domain.IsNotFound(err):
		result = metrics.ResultRejected
		s.entry(ctx).WithError(err).WithField("operation", op).Info("operation rejected")
	default:
		result = metrics.ResultError
		s.entry(ctx).WithError(err).WithField("operation", op).Error("store operation failed")
	}
	s.metrics.ObserveOperation(op, result, time.Since(start))
}
