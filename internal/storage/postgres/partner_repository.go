package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

const selectPartnerColumns = `
	SELECT p.id, p.type_id, COALESCE(tp.type_name, ''), p.name, p.director, p.email,
	       p.phone_number, p.legal_address, p.inn, p.current_rating, p.logo
	FROM partners p
	LEFT JOIN type_partners tp ON tp.id = p.type_id
`

type partnerRepository struct {
	provider *Provider
}

// NewPartnerRepository создаёт PostgreSQL-реализацию PartnerRepository.
func NewPartnerRepository(provider *Provider) domain.PartnerRepository {
	return &partnerRepository{provider: provider}
}

func (r *partnerRepository) List(ctx context.Context) ([]domain.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	partners := make([]domain.Partner, 0)
	err := withConn(ctx, r.provider, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectPartnerColumns+`
			ORDER BY LOWER(p.name) ASC, p.id ASC
		`)
		if err != nil {
			return fmt.Errorf("query partners: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPartner(rows)
			if err != nil {
				return err
			}
			partners = append(partners, p)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate partner rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, readError("list partners", err)
	}

	return partners, nil
}

func (r *partnerRepository) ListTypes(ctx context.Context) ([]domain.PartnerType, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	types := make([]domain.PartnerType, 0)
	err := withConn(ctx, r.provider, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, `
			SELECT id, type_name
			FROM type_partners
			ORDER BY id ASC
		`)
		if err != nil {
			return fmt.Errorf("query partner types: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var pt domain.PartnerType
			if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
				return fmt.Errorf("scan partner type: %w", err)
			}
			types = append(types, pt)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate partner types: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, readError("list partner types", err)
	}

	return types, nil
}

func (r *partnerRepository) Get(ctx context.Context, id int64) (domain.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var partner domain.Partner
	err := withConn(ctx, r.provider, func(ctx context.Context, conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, selectPartnerColumns+`
			WHERE p.id = $1
		`, id)
		p, err := scanPartner(row)
		if err != nil {
			return err
		}
		partner = p
		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Partner{}, domain.ErrPartnerNotFound
		}
		return domain.Partner{}, readError("select partner", err)
	}

	return partner, nil
}

func (r *partnerRepository) Add(ctx context.Context, fields domain.PartnerFields) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	err := withTx(ctx, r.provider, nil, func(ctx context.Context, tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			INSERT INTO partners (
				name, type_id, director, email, phone_number, legal_address, inn, current_rating
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`,
			fields.Name, nullableID(fields.TypeID), fields.Director, fields.Email,
			fields.Phone, fields.LegalAddress, fields.INN, fields.Rating,
		).Scan(&id)
	})
	if err != nil {
		return 0, writeError("insert partner", err)
	}

	return id, nil
}

func (r *partnerRepository) Update(ctx context.Context, id int64, fields domain.PartnerFields) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := withTx(ctx, r.provider, nil, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE partners
			SET name = $1,
			    type_id = $2,
			    director = $3,
			    email = $4,
			    phone_number = $5,
			    legal_address = $6,
			    inn = $7,
			    current_rating = $8
			WHERE id = $9
		`,
			fields.Name, nullableID(fields.TypeID), fields.Director, fields.Email,
			fields.Phone, fields.LegalAddress, fields.INN, fields.Rating, id,
		)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return domain.ErrPartnerNotFound
		}
		return nil
	})
	if err != nil {
		return writeError("update partner", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row rowScanner) (domain.Partner, error) {
	var (
		p      domain.Partner
		typeID sql.NullInt64
	)
	if err := row.Scan(
		&p.ID, &typeID, &p.TypeName, &p.Name, &p.Director, &p.Email,
		&p.Phone, &p.LegalAddress, &p.INN, &p.Rating, &p.Logo,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Partner{}, err
		}
		return domain.Partner{}, fmt.Errorf("scan partner row: %w", err)
	}
	if typeID.Valid {
		p.TypeID = domain.TypeIDPtr(typeID.Int64)
	}
	return p, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

var _ domain.PartnerRepository = (*partnerRepository)(nil)
