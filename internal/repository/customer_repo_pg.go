package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	GetByUserID(ctx context.Context, q Querier, userID int64) (*domain.CustomerInfo, error)
	Upsert(ctx context.Context, q Querier, info *domain.CustomerInfo) error
}

type PGCustomerRepository struct{}

func NewCustomerRepository() CustomerRepository {
	return &PGCustomerRepository{}
}

func (r *PGCustomerRepository) GetByUserID(ctx context.Context, q Querier, userID int64) (*domain.CustomerInfo, error) {
	row := q.QueryRow(ctx, `SELECT user_id, full_name, email, phone, passport_number, created_at, updated_at FROM customer_info WHERE user_id=$1`, userID)
	var c domain.CustomerInfo
	if err := row.Scan(&c.UserID, &c.FullName, &c.Email, &c.Phone, &c.PassportNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGCustomerRepository) Upsert(ctx context.Context, q Querier, info *domain.CustomerInfo) error {
	return q.QueryRow(ctx, `INSERT INTO customer_info (user_id, full_name, email, phone, passport_number)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET full_name=EXCLUDED.full_name, email=EXCLUDED.email, phone=EXCLUDED.phone, passport_number=EXCLUDED.passport_number, updated_at=now()
		RETURNING created_at, updated_at`,
		info.UserID, info.FullName, info.Email, info.Phone, info.PassportNumber).
		Scan(&info.CreatedAt, &info.UpdatedAt)
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
