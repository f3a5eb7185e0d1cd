package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeffy-git/Airport-Management-System/config"
	"github.com/jeffy-git/Airport-Management-System/internal/email"
	"github.com/jeffy-git/Airport-Management-System/internal/kafka"
	"github.com/jeffy-git/Airport-Management-System/internal/repository"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// The worker consumes booking notifications and periodically reconciles each
// flight's booked-seat counter against its passenger records. Reconciliation
// repairs the one recoverable crash window of the booking transaction: a
// passenger row committed without the matching counter state.
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

	flightRepo := repository.NewFlightRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.WithError(err).Warn("decode booking event")
				return nil
			}
			return emailSender.Send(ctx, event)
		})
		if err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("consumer stopped")
		}
	}()

	sweep := time.Duration(cfg.Worker.ReconcileSweepMinutes) * time.Minute
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			repaired, err := flightRepo.ReconcileBookedSeats(ctx)
			if err != nil {
				logger.WithError(err).Error("reconcile booked seats")
				continue
			}
			if len(repaired) > 0 {
				logger.WithField("flights", repaired).Warn("repaired drifted seat counters")
			}
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}
