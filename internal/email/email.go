package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skybooking/internal/kafka"
	"github.com/Domenick1991/skybooking/internal/repository"
	"go.uber.org/zap"
)

// Sender composes and sends booking emails. Delivery is stubbed at the
// provider boundary; the real SMTP integration lives outside the core.
type Sender struct {
	db        repository.Querier
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewSender(db repository.Querier, customers repository.CustomerRepository, log *zap.Logger) *Sender {
	return &Sender{db: db, customers: customers, log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	customer, err := s.customers.GetByUserID(ctx, s.db, event.UserID)
	if err != nil {
		return fmt.Errorf("load customer info: %w", err)
	}
	if customer == nil || customer.Email == "" {
		s.log.Warn("no email address for user, skipping",
			zap.Int64("user_id", event.UserID),
			zap.Int64("booking_id", event.BookingID),
		)
		return nil
	}

	s.log.Info("email sent",
		zap.String("to", customer.Email),
		zap.String("kind", event.Kind),
		zap.Int64("flight_id", event.FlightID),
		zap.String("seat", event.SeatLabel),
		zap.String("code", event.ConfirmationCode),
	)
	return nil
}
