package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skybooking/config"
	"github.com/Domenick1991/skybooking/internal/email"
	"github.com/Domenick1991/skybooking/internal/invoice"
	"github.com/Domenick1991/skybooking/internal/kafka"
	"github.com/Domenick1991/skybooking/internal/notify"
	"github.com/Domenick1991/skybooking/internal/push"
	"github.com/Domenick1991/skybooking/internal/repository"
	"github.com/Domenick1991/skybooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	txm := repository.NewTxManager(pool)
	flightRepo := repository.NewFlightRepository()
	seatRepo := repository.NewSeatRepository()
	bookingRepo := repository.NewBookingRepository()
	notificationRepo := repository.NewNotificationRepository()
	customerRepo := repository.NewCustomerRepository()

	dispatcher := notify.NewDispatcher(
		producer,
		cfg.Kafka.NotificationsTopic,
		cfg.Kafka.InvoiceTopic,
		time.Duration(cfg.Booking.PushDelaySeconds)*time.Second,
		logger.With(zap.String("component", "dispatcher")),
	)
	bookingService := booking.NewBookingService(
		pool, txm,
		bookingRepo, flightRepo, seatRepo, notificationRepo,
		booking.WithDispatcher(dispatcher),
		booking.WithLogger(logger.With(zap.String("service", "booking"))),
	)

	emailSender := email.NewSender(pool, customerRepo, logger.With(zap.String("component", "email")))
	pushSender := push.NewSender(logger.With(zap.String("component", "push")))
	invoiceGen := invoice.NewGenerator(pool, customerRepo, logger.With(zap.String("component", "invoice")))

	notificationsConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer notificationsConsumer.Close()
	invoiceConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.InvoiceTopic)
	defer invoiceConsumer.Close()

	go func() {
		err := notificationsConsumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode notification event", zap.Error(err))
				return nil
			}
			var sendErr error
			switch event.Channel {
			case notify.ChannelPush:
				sendErr = pushSender.Send(ctx, event)
			default:
				sendErr = emailSender.Send(ctx, event)
			}
			if sendErr != nil {
				// Best effort: log and move on, never redeliver.
				logger.Warn("send notification", zap.String("channel", event.Channel), zap.Error(sendErr))
			}
			return nil
		})
		if err != nil {
			logger.Warn("notifications consumer stopped", zap.Error(err))
		}
	}()

	go func() {
		err := invoiceConsumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode invoice event", zap.Error(err))
				return nil
			}
			if _, err := invoiceGen.Generate(ctx, event); err != nil {
				logger.Warn("generate invoice", zap.Int64("booking_id", event.BookingID), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			logger.Warn("invoice consumer stopped", zap.Error(err))
		}
	}()

	sweepInterval := time.Duration(cfg.Worker.ReminderSweepMinutes) * time.Minute
	reminderWindow := time.Duration(cfg.Worker.ReminderWindowHours) * time.Hour

	sweepTicker := time.NewTicker(sweepInterval)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			// Each sweep covers the slice of departures that just moved
			// inside the reminder window, so bookings are reminded once.
			from := time.Now().Add(reminderWindow)
			to := from.Add(sweepInterval)
			count, err := bookingService.SweepDepartureReminders(ctx, from, to)
			if err != nil {
				logger.Warn("departure reminder sweep", zap.Error(err))
				continue
			}
			if count > 0 {
				logger.Info("departure reminders sent", zap.Int("count", count))
			}
		case <-ctx.Done():
			logger.Info("shutting down worker")
			return
		}
	}
}
