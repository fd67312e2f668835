package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

// Store — in-memory хранилище для локальной разработки и тестов.
// Повторяет ограничения схемы PostgreSQL, чтобы репозитории вели себя одинаково.
type Store struct {
	mu sync.RWMutex

	managers      map[int64]domain.Manager
	partnerTypes  map[int64]domain.PartnerType
	partners      map[int64]domain.Partner
	products      map[int64]domain.Product
	sales         []domain.SalesRecord
	nextManagerID int64
	nextTypeID    int64
	nextPartnerID int64
	nextProductID int64
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		managers:     make(map[int64]domain.Manager),
		partnerTypes: make(map[int64]domain.PartnerType),
		partners:     make(map[int64]domain.Partner),
		products:     make(map[int64]domain.Product),
	}
}

// AddManager заводит менеджера; логин уникален.
func (s *Store) AddManager(m domain.Manager) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.managers {
		if existing.Login == m.Login {
			return 0, fmt.Errorf("%w: manager login %q already exists", domain.ErrPersistence, m.Login)
		}
	}
	s.nextManagerID++
	m.ID = s.nextManagerID
	s.managers[m.ID] = m
	return m.ID, nil
}

// AddPartnerType добавляет запись справочника типов.
func (s *Store) AddPartnerType(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTypeID++
	s.partnerTypes[s.nextTypeID] = domain.PartnerType{ID: s.nextTypeID, Name: name}
	return s.nextTypeID
}

// AddProduct добавляет продукт.
func (s *Store) AddProduct(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	s.products[s.nextProductID] = domain.Product{ID: s.nextProductID, Name: name}
	return s.nextProductID
}

// RecordSale добавляет строку истории продаж с проверкой ссылок.
func (s *Store) RecordSale(rec domain.SalesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partners[rec.PartnerID]; !ok {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, domain.ErrPartnerNotFound)
	}
	if _, ok := s.products[rec.ProductID]; !ok {
		return fmt.Errorf("%w: product %d not found", domain.ErrPersistence, rec.ProductID)
	}
	if rec.Quantity < 0 || rec.Amount.IsNegative() {
		return fmt.Errorf("%w: sales quantity and amount must be non-negative", domain.ErrPersistence)
	}
	s.sales = append(s.sales, rec)
	return nil
}

// SetPartnerLogo сохраняет логотип партнёра.
func (s *Store) SetPartnerLogo(id int64, logo []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partners[id]
	if !ok {
		return domain.ErrPartnerNotFound
	}
	p.Logo = append([]byte(nil), logo...)
	s.partners[id] = p
	return nil
}

// checkPartnerRow повторяет CHECK и FK ограничения таблицы partners.
// Вызывается под блокировкой.
func (s *Store) checkPartnerRow(f domain.PartnerFields) error {
	required := map[string]string{
		"name":     f.Name,
		"director": f.Director,
		"email":    f.Email,
		"inn":      f.INN,
	}
	for column, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: column %s violates check constraint", domain.ErrPersistence, column)
		}
	}
	if f.Rating < domain.MinRating || f.Rating > domain.MaxRating {
		return fmt.Errorf("%w: current_rating %d violates check constraint", domain.ErrPersistence, f.Rating)
	}
	if f.TypeID != nil {
		if _, ok := s.partnerTypes[*f.TypeID]; !ok {
			return fmt.Errorf("%w: %w", domain.ErrPersistence, domain.ErrPartnerTypeNotFound)
		}
	}
	return nil
}

// partnerView собирает партнёра с названием типа. Вызывается под блокировкой.
func (s *Store) partnerView(p domain.Partner) domain.Partner {
	p.TypeName = ""
	if p.TypeID != nil {
		id := *p.TypeID
		p.TypeID = &id
		p.TypeName = s.partnerTypes[id].Name
	}
	if p.Logo != nil {
		p.Logo = append([]byte(nil), p.Logo...)
	}
	return p
}

func sumAmounts(records []domain.SalesRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
