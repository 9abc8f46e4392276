// Package notify delivers post-commit side effects. Everything here is
// best effort: the booking is already committed and must stay committed
// whatever happens to the outbound messages.
package notify

import (
	"context"
	"strconv"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChannelEmail = "email"
	ChannelPush  = "push"

	publishTimeout = 10 * time.Second
	invoiceRetries = 3
)

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

type Dispatcher struct {
	producer           Producer
	notificationsTopic string
	invoiceTopic       string
	pushDelay          time.Duration
	log                *zap.Logger
}

func NewDispatcher(producer Producer, notificationsTopic, invoiceTopic string, pushDelay time.Duration, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		producer:           producer,
		notificationsTopic: notificationsTopic,
		invoiceTopic:       invoiceTopic,
		pushDelay:          pushDelay,
		log:                log,
	}
}

// Dispatch fans one booking outcome out to email, push and, for new
// confirmations, the invoice pipeline. It returns immediately; the
// caller never waits on delivery. The push is held back by pushDelay so
// it does not race the client's own UI transition.
func (d *Dispatcher) Dispatch(booking domain.Booking, kind domain.NotificationType) {
	event := d.event(booking, kind)

	go d.publish(d.notificationsTopic, withChannel(event, ChannelEmail))

	pushEvent := withChannel(event, ChannelPush)
	time.AfterFunc(d.pushDelay, func() {
		d.publish(d.notificationsTopic, pushEvent)
	})

	if kind == domain.NotificationBookingConfirmed {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := d.producer.PublishWithRetry(ctx, d.invoiceTopic, event.ConfirmationCode, event, invoiceRetries); err != nil {
				d.log.Warn("publish invoice request",
					zap.Int64("booking_id", event.BookingID),
					zap.Error(err),
				)
			}
		}()
	}
}

func (d *Dispatcher) publish(topic string, event kafka.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	key := strconv.FormatInt(event.BookingID, 10)
	if err := d.producer.Publish(ctx, topic, key, event); err != nil {
		d.log.Warn("publish notification event",
			zap.String("topic", topic),
			zap.String("kind", event.Kind),
			zap.String("channel", event.Channel),
			zap.Int64("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) event(booking domain.Booking, kind domain.NotificationType) kafka.BookingEvent {
	return kafka.BookingEvent{
		EventID:          uuid.NewString(),
		Kind:             string(kind),
		BookingID:        booking.ID,
		UserID:           booking.UserID,
		FlightID:         booking.FlightID,
		SeatLabel:        booking.SeatLabel,
		Status:           string(booking.Status),
		TotalPrice:       booking.TotalPrice.String(),
		ConfirmationCode: booking.ConfirmationCode,
		OccurredAt:       time.Now(),
	}
}

func withChannel(event kafka.BookingEvent, channel string) kafka.BookingEvent {
	event.Channel = channel
	return event
}
