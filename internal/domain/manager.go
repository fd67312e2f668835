package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Manager — учётная запись менеджера. Создаётся вне этого модуля и только читается.
type Manager struct {
	ID           int64
	Login        string
	PasswordHash string
	FullName     string
	Role         string
	Active       bool
}

// Session — контекст аутентифицированного менеджера, который вызывающая сторона
// передаёт дальше явно. Токенов нет: сессия живёт, пока жив процесс.
type Session struct {
	ID        uuid.UUID
	Manager   Manager
	StartedAt time.Time
}

// NewSession создаёт сессию для менеджера. Хеш пароля в сессию не попадает.
func NewSession(m Manager, startedAt time.Time) Session {
	m.PasswordHash = ""
	return Session{
		ID:        uuid.New(),
		Manager:   m,
		StartedAt: startedAt,
	}
}

type sessionKey struct{}

// ContextWithSession привязывает сессию к контексту последующих вызовов.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext возвращает сессию, если она была привязана к контексту.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
