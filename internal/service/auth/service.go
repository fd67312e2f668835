package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/metrics"
)

// Service проверяет учётные данные менеджера.
type Service struct {
	managers domain.ManagerRepository
	hasher   PasswordHasher
	logger   *log.Entry
	metrics  *metrics.StoreMetrics
	now      func() time.Time
}

// NewService создаёт сервис аутентификации. hasher по умолчанию DetectingHasher.
func NewService(managers domain.ManagerRepository, hasher PasswordHasher, logger *log.Entry, m *metrics.StoreMetrics) *Service {
	if hasher == nil {
		hasher = DetectingHasher{}
	}
	if logger == nil {
		logger = log.WithField("component", "auth")
	}
	return &Service{
		managers: managers,
		hasher:   hasher,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Authenticate возвращает сессию активного менеджера с совпавшим паролем.
func (s *Service) Authenticate(ctx context.Context, login, password string) (domain.Session, error) {
	start := s.now()
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)

	if login == "" || password == "" {
		s.record(metrics.ResultRejected, start)
		return domain.Session{}, fmt.Errorf("%w: login and password are required", domain.ErrValidation)
	}

	logger := s.logger.WithField("login", login)

	manager, err := s.managers.FindActiveByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			s.record(metrics.ResultRejected, start)
			logger.Info("authentication rejected")
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		s.record(metrics.ResultError, start)
		logger.WithError(err).Error("manager lookup failed")
		return domain.Session{}, fmt.Errorf("authenticate %q: %w", login, err)
	}

	ok, err := s.hasher.Verify(manager.PasswordHash, password)
	if err != nil {
		// Повреждённый дайджест не отличаем от неверного пароля.
		logger.WithError(err).Warn("stored password digest is unreadable")
	}
	if !ok {
		s.record(metrics.ResultRejected, start)
		logger.Info("authentication rejected")
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	session := domain.NewSession(manager, s.now())
	s.record(metrics.ResultOK, start)
	logger.WithFields(log.Fields{
		"session_id": session.ID,
		"role":       manager.Role,
	}).Info("manager authenticated")
	return session, nil
}

func (s *Service) record(result string, start time.Time) {
	s.metrics.RecordAuthAttempt(result)
	s.metrics.ObserveOperation("auth.authenticate", result, s.now().Sub(start))
}
