package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context, q Querier) ([]domain.Flight, error)
	GetByID(ctx context.Context, q Querier, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct{}

func NewFlightRepository() FlightRepository {
	return &PGFlightRepository{}
}

func (r *PGFlightRepository) List(ctx context.Context, q Querier) ([]domain.Flight, error) {
	rows, err := q.Query(ctx, `SELECT id, route_id, airline_id, departure_time, arrival_time, base_fare, seat_capacity, created_at, updated_at FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.DepartureTime, &f.ArrivalTime, &f.BaseFare, &f.SeatCapacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, q Querier, id int64) (*domain.Flight, error) {
	row := q.QueryRow(ctx, `SELECT id, route_id, airline_id, departure_time, arrival_time, base_fare, seat_capacity, created_at, updated_at FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.DepartureTime, &f.ArrivalTime, &f.BaseFare, &f.SeatCapacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
