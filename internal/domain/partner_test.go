package domain

import (
	"errors"
	"strings"
	"testing"
)

func validFields() PartnerFields {
	return PartnerFields{
		Name:         "ООО Ромашка",
		TypeID:       TypeIDPtr(1),
		Director:     "Иванов Иван Иванович",
		Email:        "info@romashka.ru",
		Phone:        "+7 900 000 00 00",
		LegalAddress: "г. Москва, ул. Ленина, 1",
		INN:          "7701234567",
		Rating:       5,
	}
}

func TestValidatePartnerFields_Valid(t *testing.T) {
	if err := ValidatePartnerFields(validFields()); err != nil {
		t.Fatalf("expected valid fields, got %v", err)
	}

	noType := validFields()
	noType.TypeID = nil
	noType.Phone = ""
	noType.LegalAddress = ""
	if err := ValidatePartnerFields(noType); err != nil {
		t.Fatalf("type, phone and address are optional, got %v", err)
	}
}

func TestValidatePartnerFields_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PartnerFields)
		wantMsg string
	}{
		{
			name:    "blank name",
			mutate:  func(f *PartnerFields) { f.Name = "   " },
			wantMsg: "partner name is required",
		},
		{
			name:    "missing director",
			mutate:  func(f *PartnerFields) { f.Director = "" },
			wantMsg: "director is required",
		},
		{
			name:    "missing email",
			mutate:  func(f *PartnerFields) { f.Email = "" },
			wantMsg: "email is required",
		},
		{
			name:    "missing inn",
			mutate:  func(f *PartnerFields) { f.INN = "\t" },
			wantMsg: "inn is required",
		},
		{
			name:    "rating below range",
			mutate:  func(f *PartnerFields) { f.Rating = 0 },
			wantMsg: "rating must be an integer between 1 and 10",
		},
		{
			name:    "rating above range",
			mutate:  func(f *PartnerFields) { f.Rating = 11 },
			wantMsg: "rating must be an integer between 1 and 10",
		},
		{
			name:    "non positive type id",
			mutate:  func(f *PartnerFields) { f.TypeID = TypeIDPtr(0) },
			wantMsg: "partner type id must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)

			err := ValidatePartnerFields(fields)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected message %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidatePartnerFields_ReportsEveryField(t *testing.T) {
	err := ValidatePartnerFields(PartnerFields{Rating: 42})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, msg := range []string{"partner name", "director", "email", "inn", "rating"} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("expected %q in %q", msg, err.Error())
		}
	}
}

func TestPartnerFieldsNormalize(t *testing.T) {
	f := PartnerFields{Name: "  Альфа ", Email: " a@b.ru\n", INN: " 123 "}.Normalize()
	if f.Name != "Альфа" || f.Email != "a@b.ru" || f.INN != "123" {
		t.Fatalf("unexpected normalized fields: %+v", f)
	}
}

func TestPartnerDisplayTypeName(t *testing.T) {
	if got := (Partner{}).DisplayTypeName(); got != UnknownTypeName {
		t.Fatalf("expected %q, got %q", UnknownTypeName, got)
	}
	if got := (Partner{TypeName: "ЗАО"}).DisplayTypeName(); got != "ЗАО" {
		t.Fatalf("expected type name, got %q", got)
	}
}

func TestPartnerFieldsRoundTrip(t *testing.T) {
	p := Partner{ID: 7, Logo: []byte{1}}
	want := validFields()
	p.Name, p.TypeID, p.Director, p.Email = want.Name, want.TypeID, want.Director, want.Email
	p.Phone, p.LegalAddress, p.INN, p.Rating = want.Phone, want.LegalAddress, want.INN, want.Rating

	got := p.Fields()
	if got.Name != want.Name || *got.TypeID != *want.TypeID || got.Rating != want.Rating || got.INN != want.INN {
		t.Fatalf("unexpected fields: %+v", got)
	}
}
