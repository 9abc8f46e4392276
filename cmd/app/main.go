package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/skybooking/config"
	"github.com/Domenick1991/skybooking/internal/bootstrap"
	"github.com/Domenick1991/skybooking/internal/cache"
	"github.com/Domenick1991/skybooking/internal/kafka"
	"github.com/Domenick1991/skybooking/internal/notify"
	"github.com/Domenick1991/skybooking/internal/repository"
	"github.com/Domenick1991/skybooking/internal/service/booking"
	"github.com/Domenick1991/skybooking/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
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

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second,
		time.Duration(cfg.Booking.SeatMapCacheTTL)*time.Second,
	)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	dispatcher := notify.NewDispatcher(
		producer,
		cfg.Kafka.NotificationsTopic,
		cfg.Kafka.InvoiceTopic,
		time.Duration(cfg.Booking.PushDelaySeconds)*time.Second,
		logger.With(zap.String("component", "dispatcher")),
	)

	txm := repository.NewTxManager(pool)
	flightRepo := repository.NewFlightRepository()
	seatRepo := repository.NewSeatRepository()
	bookingRepo := repository.NewBookingRepository()
	notificationRepo := repository.NewNotificationRepository()

	flightService := flights.NewFlightService(pool, flightRepo, seatRepo, redisCache)
	bookingService := booking.NewBookingService(
		pool, txm,
		bookingRepo, flightRepo, seatRepo, notificationRepo,
		booking.WithDispatcher(dispatcher),
		booking.WithCache(redisCache),
		booking.WithLogger(logger.With(zap.String("service", "booking"))),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
