package push

import (
	"context"

	"github.com/Domenick1991/skybooking/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers push notifications. Stubbed at the provider boundary.
type Sender struct {
	log *zap.Logger
}

func NewSender(log *zap.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info("push sent",
		zap.Int64("user_id", event.UserID),
		zap.String("kind", event.Kind),
		zap.Int64("booking_id", event.BookingID),
		zap.String("seat", event.SeatLabel),
	)
	return nil
}
