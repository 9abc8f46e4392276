package flights

import (
	"context"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	SeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetSeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error)
	SetSeatMap(ctx context.Context, flightID int64, seats []domain.Seat) error
}

type FlightService struct {
	db      repository.Querier
	flights repository.FlightRepository
	seats   repository.SeatRepository
	cache   FlightCache
}

func NewFlightService(db repository.Querier, flights repository.FlightRepository, seats repository.SeatRepository, cache FlightCache) *FlightService {
	return &FlightService{db: db, flights: flights, seats: seats, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, s.db, id)
}

// SeatMap serves the per-flight seat list, cache first. The cache entry
// is short-lived and invalidated after every claim/release, so a stale
// availability flag only survives until the authoritative conditional
// claim rejects the booking.
func (s *FlightService) SeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	if _, err := s.flights.GetByID(ctx, s.db, flightID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSeatMap(ctx, flightID); err == nil && cached != nil {
			return cached, nil
		}
	}

	seats, err := s.seats.ListByFlight(ctx, s.db, flightID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSeatMap(ctx, flightID, seats)
	}
	return seats, nil
}

var _ FlightUseCase = (*FlightService)(nil)
