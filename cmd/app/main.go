package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeffy-git/Airport-Management-System/config"
	"github.com/jeffy-git/Airport-Management-System/internal/bootstrap"
	"github.com/jeffy-git/Airport-Management-System/internal/cache"
	"github.com/jeffy-git/Airport-Management-System/internal/kafka"
	"github.com/jeffy-git/Airport-Management-System/internal/repository"
	"github.com/jeffy-git/Airport-Management-System/internal/service/booking"
	"github.com/jeffy-git/Airport-Management-System/internal/service/flights"
	"github.com/jeffy-git/Airport-Management-System/migrations"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)

	flightService := flights.NewFlightService(flightRepo, passengerRepo, redisCache)
	bookingService := booking.NewBookingService(
		passengerRepo,
		flightRepo,
		booking.NewReferenceGenerator(cfg.Booking.ReferencePrefix),
		redisCache,
		producer,
		logger,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithContentionRetries(cfg.Booking.ContentionRetries),
		booking.WithReferenceRetries(cfg.Booking.ReferenceRetries),
	)

	if err := bootstrap.Run(ctx, cfg, logger, flightService, bookingService); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
