package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/skybooking/internal/domain"
)

// statusForError maps the domain taxonomy onto HTTP statuses. Seat
// conflicts come back as 409 so the UI can prompt re-selection instead
// of treating them as a generic failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrSeatNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatUnavailable),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrFlightDeparted),
		errors.Is(err, domain.ErrNotEligible):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCodeExhausted):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
