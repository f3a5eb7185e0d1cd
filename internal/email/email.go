package email

import (
	"context"

	"github.com/jeffy-git/Airport-Management-System/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender is a stand-in for a real mail gateway: it logs the notification the
// passenger would receive.
type Sender struct {
	logger *logrus.Logger
}

func NewSender(logger *logrus.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.logger.WithFields(logrus.Fields{
		"to":        event.Email,
		"event":     event.Type,
		"flight":    event.FlightNumber,
		"seat":      event.Seat,
		"reference": event.Reference,
	}).Info("sending booking email")
	return nil
}
