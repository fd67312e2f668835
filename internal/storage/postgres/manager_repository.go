package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

type managerRepository struct {
	provider *Provider
}

// NewManagerRepository создаёт PostgreSQL-реализацию ManagerRepository.
func NewManagerRepository(provider *Provider) domain.ManagerRepository {
	return &managerRepository{provider: provider}
}

func (r *managerRepository) FindActiveByLogin(ctx context.Context, login string) (domain.Manager, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var m domain.Manager
	err := withConn(ctx, r.provider, func(ctx context.Context, conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, `
			SELECT id, login, password_hash, full_name, role, is_active
			FROM managers
			WHERE login = $1
			  AND is_active = TRUE
		`, login).Scan(&m.ID, &m.Login, &m.PasswordHash, &m.FullName, &m.Role, &m.Active)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Manager{}, domain.ErrManagerNotFound
		}
		return domain.Manager{}, readError("select manager", err)
	}

	return m, nil
}

var _ domain.ManagerRepository = (*managerRepository)(nil)
