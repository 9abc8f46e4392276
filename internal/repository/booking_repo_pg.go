package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

type BookingRepository interface {
	Create(ctx context.Context, q Querier, booking *domain.Booking) error
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Booking, error)
	GetByIDForUser(ctx context.Context, q Querier, id, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, q Querier, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, q Querier, id int64, status domain.BookingStatus) (*domain.Booking, error)
	UpdateSeat(ctx context.Context, q Querier, id int64, seatLabel string, total decimal.Decimal) (*domain.Booking, error)
	CodeExists(ctx context.Context, q Querier, code string) (bool, error)
	ListConfirmedDepartingBetween(ctx context.Context, q Querier, from, to time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct{}

func NewBookingRepository() BookingRepository {
	return &PGBookingRepository{}
}

const bookingColumns = `id, user_id, flight_id, seat_label, status, total_price, confirmation_code, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatLabel, &b.Status, &b.TotalPrice, &b.ConfirmationCode, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, q Querier, booking *domain.Booking) error {
	err := q.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, seat_label, status, total_price, confirmation_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.FlightID, booking.SeatLabel, booking.Status, booking.TotalPrice, booking.ConfirmationCode).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return translateBookingInsertErr(err)
	}
	return nil
}

// translateBookingInsertErr maps constraint backstops onto the domain
// taxonomy so storage error objects never leak to callers. The unique
// index on confirmation_code catches collisions the application-level
// probe missed; the partial unique index on (flight_id, seat_label)
// for confirmed rows catches a double-book that somehow got past the
// seat claim.
func translateBookingInsertErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "bookings_confirmation_code_key":
			return domain.ErrCodeExhausted
		case "bookings_confirmed_seat_key":
			return domain.ErrSeatUnavailable
		}
	}
	return err
}

func (r *PGBookingRepository) GetByID(ctx context.Context, q Querier, id int64) (*domain.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) GetByIDForUser(ctx context.Context, q Querier, id, userID int64) (*domain.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND user_id=$2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, q Querier, userID int64) ([]domain.Booking, error) {
	rows, err := q.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatLabel, &b.Status, &b.TotalPrice, &b.ConfirmationCode, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, q Querier, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) UpdateSeat(ctx context.Context, q Querier, id int64, seatLabel string, total decimal.Decimal) (*domain.Booking, error) {
	b, err := scanBooking(q.QueryRow(ctx, `UPDATE bookings SET seat_label=$1, total_price=$2, updated_at=now() WHERE id=$3 RETURNING `+bookingColumns, seatLabel, total, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) CodeExists(ctx context.Context, q Querier, code string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE confirmation_code=$1)`, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGBookingRepository) ListConfirmedDepartingBetween(ctx context.Context, q Querier, from, to time.Time) ([]domain.Booking, error) {
	rows, err := q.Query(ctx, `SELECT b.id, b.user_id, b.flight_id, b.seat_label, b.status, b.total_price, b.confirmation_code, b.created_at, b.updated_at
		FROM bookings b JOIN flights f ON f.id = b.flight_id
		WHERE b.status=$1 AND f.departure_time >= $2 AND f.departure_time < $3`,
		domain.BookingStatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatLabel, &b.Status, &b.TotalPrice, &b.ConfirmationCode, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
