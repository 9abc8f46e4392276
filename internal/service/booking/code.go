package booking

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/repository"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6

	// maxCodeAttempts bounds regeneration on collision. The unique
	// constraint on bookings.confirmation_code remains the authoritative
	// backstop if the probe below races another insert.
	maxCodeAttempts = 10
)

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), nil
}

// allocateCode produces a confirmation code not present in the bookings
// table, regenerating on collision up to maxCodeAttempts times. Runs on
// the caller's transaction handle so the probe sees a consistent view.
func allocateCode(ctx context.Context, q repository.Querier, bookings repository.BookingRepository) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		exists, err := bookings.CodeExists(ctx, q, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrCodeExhausted
}
