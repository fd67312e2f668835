package domain

import "strings"

const (
	// MinRating и MaxRating задают допустимый диапазон рейтинга партнёра.
	MinRating = 1
	MaxRating = 10

	// UnknownTypeName отображается, когда у партнёра не указан тип.
	UnknownTypeName = "Неизвестный тип"
)

// PartnerType — справочник типов партнёров.
type PartnerType struct {
	ID   int64
	Name string
}

// Partner — организация, через которую компания продаёт продукцию.
// TypeID равен nil, если тип не задан; TypeName заполняется из справочника при чтении.
type Partner struct {
	ID           int64
	TypeID       *int64
	TypeName     string
	Name         string
	Director     string
	Email        string
	Phone        string
	LegalAddress string
	INN          string
	Rating       int
	Logo         []byte
}

// DisplayTypeName возвращает название типа для отображения.
func (p Partner) DisplayTypeName() string {
	if p.TypeName == "" {
		return UnknownTypeName
	}
	return p.TypeName
}

// Fields возвращает изменяемые поля партнёра, например для формы редактирования.
func (p Partner) Fields() PartnerFields {
	return PartnerFields{
		Name:         p.Name,
		TypeID:       p.TypeID,
		Director:     p.Director,
		Email:        p.Email,
		Phone:        p.Phone,
		LegalAddress: p.LegalAddress,
		INN:          p.INN,
		Rating:       p.Rating,
	}
}

// PartnerFields — набор изменяемых полей для добавления и полной замены партнёра.
type PartnerFields struct {
	Name         string `validate:"required"`
	TypeID       *int64 `validate:"omitempty,gt=0"`
	Director     string `validate:"required"`
	Email        string `validate:"required"`
	Phone        string
	LegalAddress string
	INN          string `validate:"required"`
	Rating       int    `validate:"min=1,max=10"`
}

// Normalize обрезает пробелы вокруг строковых полей.
func (f PartnerFields) Normalize() PartnerFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Director = strings.TrimSpace(f.Director)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.LegalAddress = strings.TrimSpace(f.LegalAddress)
	f.INN = strings.TrimSpace(f.INN)
	return f
}

// TypeIDPtr — удобный конструктор ссылки на тип.
func TypeIDPtr(id int64) *int64 {
	return &id
}
