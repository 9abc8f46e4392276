package domain

import "errors"

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrSeatUnavailable  = errors.New("seat is unavailable")
	ErrFlightDeparted   = errors.New("flight already departed")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotEligible      = errors.New("booking is not eligible for this operation")

	// ErrCodeExhausted means the confirmation code generator ran out of
	// attempts. Internal fault, aborts the booking.
	ErrCodeExhausted = errors.New("confirmation code generation exhausted")
)
