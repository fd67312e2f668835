package memory

import (
	"context"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

type managerRepositoryInMemory struct {
	store *Store
}

// NewManagerRepository возвращает in-memory репозиторий менеджеров поверх store.
func NewManagerRepository(store *Store) domain.ManagerRepository {
	return &managerRepositoryInMemory{store: store}
}

// FindActiveByLogin ищет активного менеджера по точному (регистрозависимому) логину.
func (r *managerRepositoryInMemory) FindActiveByLogin(_ context.Context, login string) (domain.Manager, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.managers {
		if m.Login == login && m.Active {
			return m, nil
		}
	}
	return domain.Manager{}, domain.ErrManagerNotFound
}

var _ domain.ManagerRepository = (*managerRepositoryInMemory)(nil)
