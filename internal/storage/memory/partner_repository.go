package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

// partnerRepositoryInMemory — in-memory реализация PartnerRepository.
type partnerRepositoryInMemory struct {
	store *Store
}

// NewPartnerRepository возвращает in-memory репозиторий партнёров поверх store.
func NewPartnerRepository(store *Store) domain.PartnerRepository {
	return &partnerRepositoryInMemory{store: store}
}

// List возвращает партнёров по имени без учёта регистра, при равенстве — по ID.
// Порядок — по кодовым точкам strings.ToLower, это лишь приближение к
// collation PostgreSQL: ё/е и знаки препинания могут сортироваться иначе.
func (r *partnerRepositoryInMemory) List(_ context.Context) ([]domain.Partner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Partner, 0, len(r.store.partners))
	for _, p := range r.store.partners {
		result = append(result, r.store.partnerView(p))
	}

	sort.Slice(result, func(i, j int) bool {
		li, lj := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if li != lj {
			return li < lj
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// ListTypes возвращает справочник типов по возрастанию ID.
func (r *partnerRepositoryInMemory) ListTypes(_ context.Context) ([]domain.PartnerType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.PartnerType, 0, len(r.store.partnerTypes))
	for _, pt := range r.store.partnerTypes {
		result = append(result, pt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Get возвращает партнёра или ErrPartnerNotFound.
func (r *partnerRepositoryInMemory) Get(_ context.Context, id int64) (domain.Partner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.partners[id]
	if !ok {
		return domain.Partner{}, domain.ErrPartnerNotFound
	}
	return r.store.partnerView(p), nil
}

// Add вставляет партнёра, если строка проходит ограничения схемы.
func (r *partnerRepositoryInMemory) Add(_ context.Context, fields domain.PartnerFields) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkPartnerRow(fields); err != nil {
		return 0, err
	}

	r.store.nextPartnerID++
	p := applyFields(domain.Partner{ID: r.store.nextPartnerID}, fields)
	r.store.partners[p.ID] = p
	return p.ID, nil
}

// Update полностью заменяет изменяемые поля; ID и логотип не меняются.
func (r *partnerRepositoryInMemory) Update(_ context.Context, id int64, fields domain.PartnerFields) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.partners[id]
	if !ok {
		return domain.ErrPartnerNotFound
	}
	if err := r.store.checkPartnerRow(fields); err != nil {
		return err
	}

	r.store.partners[id] = applyFields(current, fields)
	return nil
}

func applyFields(p domain.Partner, f domain.PartnerFields) domain.Partner {
	p.Name = f.Name
	p.TypeID = nil
	if f.TypeID != nil {
		id := *f.TypeID
		p.TypeID = &id
	}
	p.Director = f.Director
	p.Email = f.Email
	p.Phone = f.Phone
	p.LegalAddress = f.LegalAddress
	p.INN = f.INN
	p.Rating = f.Rating
	return p
}

var _ domain.PartnerRepository = (*partnerRepositoryInMemory)(nil)
