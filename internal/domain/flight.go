package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Flight struct {
	ID            int64
	RouteID       int64
	AirlineID     int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	BaseFare      decimal.Decimal
	SeatCapacity  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Departed reports whether the flight has already left relative to now.
func (f *Flight) Departed(now time.Time) bool {
	return f.DepartureTime.Before(now)
}
