package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

const pgForeignKeyViolation = "23503"

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeError приводит ошибку записи к доменной. Ошибки соединения сохраняются как есть.
func writeError(op string, err error) error {
	if errors.Is(err, domain.ErrConnection) || errors.Is(err, domain.ErrPartnerNotFound) {
		return err
	}
	if pgErrorCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("%s: %w: %w: %w", op, domain.ErrPersistence, domain.ErrPartnerTypeNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// readError приводит ошибку чтения к доменной.
func readError(op string, err error) error {
	if errors.Is(err, domain.ErrConnection) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRead, err)
}
