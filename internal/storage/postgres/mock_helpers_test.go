package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var partnerColumns = []string{
	"id", "type_id", "type_name", "name", "director", "email",
	"phone_number", "legal_address", "inn", "current_rating", "logo",
}

// newMockProvider создаёт провайдер поверх sqlmock.
func newMockProvider(t *testing.T) (*Provider, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewProviderFromDB(db, time.Second), mock
}

// requireReleased проверяет, что операция вернула соединение.
func requireReleased(t *testing.T, p *Provider) {
	t.Helper()
	require.Zero(t, p.Stats().InUse, "connection must be released after operation")
}
