package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var partnerValidator = validator.New(validator.WithRequiredStructEnabled())

var fieldMessages = map[string]string{
	"Name":     "partner name is required",
	"Director": "director is required",
	"Email":    "email is required",
	"INN":      "inn is required",
	"Rating":   fmt.Sprintf("rating must be an integer between %d and %d", MinRating, MaxRating),
	"TypeID":   "partner type id must be positive",
}

// ValidatePartnerFields выполняет проверку на стороне вызывающего кода:
// обязательные поля и диапазон рейтинга. Репозиторий эти правила не повторяет.
func ValidatePartnerFields(f PartnerFields) error {
	err := partnerValidator.Struct(f.Normalize())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s failed %q check", strings.ToLower(fe.Field()), fe.Tag())
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}
