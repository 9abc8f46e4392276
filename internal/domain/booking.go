package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID               int64
	UserID           int64
	FlightID         int64
	SeatLabel        string
	Status           BookingStatus
	TotalPrice       decimal.Decimal
	ConfirmationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
