package domain

import "context"

// ManagerRepository описывает чтение учётных записей менеджеров.
type ManagerRepository interface {
	// FindActiveByLogin возвращает активного менеджера по точному логину или ErrManagerNotFound.
	FindActiveByLogin(ctx context.Context, login string) (Manager, error)
}

// PartnerRepository описывает хранилище партнёров и справочника типов.
type PartnerRepository interface {
	// List возвращает партнёров с названием типа, по имени без учёта регистра, затем по ID.
	List(ctx context.Context) ([]Partner, error)
	// ListTypes возвращает справочник типов партнёров.
	ListTypes(ctx context.Context) ([]PartnerType, error)
	// Get возвращает партнёра по ID или ErrPartnerNotFound.
	Get(ctx context.Context, id int64) (Partner, error)
	// Add вставляет партнёра и возвращает назначенный ID. Бизнес-правила не проверяет.
	Add(ctx context.Context, fields PartnerFields) (int64, error)
	// Update полностью заменяет изменяемые поля. ErrPartnerNotFound, если строки нет.
	Update(ctx context.Context, id int64, fields PartnerFields) error
}

// SalesRepository описывает чтение истории продаж.
type SalesRepository interface {
	// PartnerStats считает итоги и разбивку по продуктам на одном снимке данных.
	PartnerStats(ctx context.Context, partnerID int64) (PartnerStats, error)
}
