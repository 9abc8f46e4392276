package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type SeatRepository interface {
	GetByFlightAndLabel(ctx context.Context, q Querier, flightID int64, label string) (*domain.Seat, error)
	ListByFlight(ctx context.Context, q Querier, flightID int64) ([]domain.Seat, error)
	// Claim flips the seat to unavailable only if it is available right
	// now; losing the race returns domain.ErrSeatUnavailable.
	Claim(ctx context.Context, q Querier, flightID int64, label string) error
	// Release unconditionally returns the seat to the pool.
	Release(ctx context.Context, q Querier, flightID int64, label string) error
}

type PGSeatRepository struct{}

func NewSeatRepository() SeatRepository {
	return &PGSeatRepository{}
}

func (r *PGSeatRepository) GetByFlightAndLabel(ctx context.Context, q Querier, flightID int64, label string) (*domain.Seat, error) {
	row := q.QueryRow(ctx, `SELECT flight_id, seat_label, seat_class, price_modifier, available FROM seats WHERE flight_id=$1 AND seat_label=$2`, flightID, label)
	var s domain.Seat
	if err := row.Scan(&s.FlightID, &s.Label, &s.Class, &s.Modifier, &s.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, q Querier, flightID int64) ([]domain.Seat, error) {
	rows, err := q.Query(ctx, `SELECT flight_id, seat_label, seat_class, price_modifier, available FROM seats WHERE flight_id=$1 ORDER BY seat_label`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.FlightID, &s.Label, &s.Class, &s.Modifier, &s.Available); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Claim is a single conditional write, not a read-then-write pair: two
// concurrent attempts on the same seat resolve to exactly one winner.
func (r *PGSeatRepository) Claim(ctx context.Context, q Querier, flightID int64, label string) error {
	res, err := q.Exec(ctx, `UPDATE seats SET available = false WHERE flight_id=$1 AND seat_label=$2 AND available = true`, flightID, label)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSeatUnavailable
	}
	return nil
}

func (r *PGSeatRepository) Release(ctx context.Context, q Querier, flightID int64, label string) error {
	res, err := q.Exec(ctx, `UPDATE seats SET available = true WHERE flight_id=$1 AND seat_label=$2`, flightID, label)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSeatNotFound
	}
	return nil
}

var _ SeatRepository = (*PGSeatRepository)(nil)
