package invoice

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skybooking/internal/kafka"
	"github.com/Domenick1991/skybooking/internal/repository"
	"go.uber.org/zap"
)

// Generator renders an invoice document for a booking and returns a
// retrievable reference. Rendering and upload are stubbed at the
// collaborator boundary; failures are the caller's to log, never to
// escalate into the booking itself.
type Generator struct {
	db        repository.Querier
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewGenerator(db repository.Querier, customers repository.CustomerRepository, log *zap.Logger) *Generator {
	return &Generator{db: db, customers: customers, log: log}
}

func (g *Generator) Generate(ctx context.Context, event kafka.BookingEvent) (string, error) {
	customer, err := g.customers.GetByUserID(ctx, g.db, event.UserID)
	if err != nil {
		return "", fmt.Errorf("load customer info: %w", err)
	}

	holder := "unknown passenger"
	if customer != nil && customer.FullName != "" {
		holder = customer.FullName
	}

	ref := fmt.Sprintf("invoices/%s.pdf", event.ConfirmationCode)
	g.log.Info("invoice generated",
		zap.String("reference", ref),
		zap.String("passenger", holder),
		zap.Int64("booking_id", event.BookingID),
		zap.String("total", event.TotalPrice),
	)
	return ref, nil
}
