package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
	"github.com/jeffy-git/Airport-Management-System/internal/kafka"
	"github.com/jeffy-git/Airport-Management-System/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Book(ctx context.Context, input BookPassengerInput) (*domain.Passenger, error)
	GetByReference(ctx context.Context, reference string) (*domain.Passenger, error)
	Cancel(ctx context.Context, reference string) (*domain.Passenger, error)
	CheckIn(ctx context.Context, reference string) (*domain.Passenger, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

const (
	defaultContentionRetries = 3
	defaultReferenceRetries  = 5
)

// BookingService coordinates the booking transaction: capacity validation,
// seat allocation, reference issuance and the atomic counter+insert commit.
// Concurrency control is optimistic: the passenger repository only commits
// while booked_seats still equals the value read here, so concurrent attempts
// on one flight conflict at the storage layer and are retried with a fresh
// read. Attempts on different flights never contend with each other.
type BookingService struct {
	passengers         repository.PassengerRepository
	flights            repository.FlightRepository
	refs               ReferenceGenerator
	cache              Cache
	producer           Producer
	logger             *logrus.Logger
	eventsTopic        string
	notificationsTopic string
	contentionRetries  int
	referenceRetries   int
}

type BookPassengerInput struct {
	FlightID  int64  `json:"flight_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Passport  string `json:"passport_number"`
}

func (in BookPassengerInput) validate() error {
	var missing []string
	if in.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if in.LastName == "" {
		missing = append(missing, "last_name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithContentionRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.contentionRetries = n
		}
	}
}

func WithReferenceRetries(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.referenceRetries = n
		}
	}
}

func NewBookingService(
	passengers repository.PassengerRepository,
	flights repository.FlightRepository,
	refs ReferenceGenerator,
	cache Cache,
	producer Producer,
	logger *logrus.Logger,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		passengers:        passengers,
		flights:           flights,
		refs:              refs,
		cache:             cache,
		producer:          producer,
		logger:            logger,
		eventsTopic:       eventsTopic,
		contentionRetries: defaultContentionRetries,
		referenceRetries:  defaultReferenceRetries,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Book(ctx context.Context, input BookPassengerInput) (*domain.Passenger, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.contentionRetries; attempt++ {
		flight, err := s.flights.GetByID(ctx, input.FlightID)
		if err != nil {
			if errors.Is(err, domain.ErrFlightNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("load flight %d: %w", input.FlightID, err)
		}
		if flight.BookedSeats >= flight.TotalSeats {
			return nil, domain.ErrFlightFull
		}

		passenger := &domain.Passenger{
			ID:           uuid.NewString(),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			Phone:        input.Phone,
			Passport:     input.Passport,
			FlightID:     flight.ID,
			FlightNumber: flight.Number,
			Seat:         SeatForIndex(flight.BookedSeats),
			Status:       domain.PassengerStatusConfirmed,
		}

		err = s.createWithReference(ctx, passenger, flight.BookedSeats)
		if err == nil {
			s.invalidateFlights(ctx)
			s.publish(ctx, "booking_confirmed", passenger)
			s.logger.WithFields(logrus.Fields{
				"flight_id": flight.ID,
				"reference": passenger.Reference,
				"seat":      passenger.Seat,
			}).Info("booking confirmed")
			return passenger, nil
		}
		if errors.Is(err, domain.ErrContention) {
			s.logger.WithFields(logrus.Fields{
				"flight_id": flight.ID,
				"attempt":   attempt + 1,
			}).Debug("booked seat counter moved, retrying")
			continue
		}
		if errors.Is(err, domain.ErrReferenceExhausted) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking for flight %d: %w", input.FlightID, err)
	}
	return nil, domain.ErrContention
}

// createWithReference regenerates the booking reference on a storage-level
// duplicate up to the retry bound. Any other error comes back as is.
func (s *BookingService) createWithReference(ctx context.Context, passenger *domain.Passenger, expectedBookedSeats int) error {
	for attempt := 0; attempt < s.referenceRetries; attempt++ {
		reference, err := s.refs.Generate()
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		passenger.Reference = reference

		err = s.passengers.CreateConfirmed(ctx, passenger, expectedBookedSeats)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrDuplicateReference) {
			s.logger.WithField("reference", reference).Warn("booking reference collision, regenerating")
			continue
		}
		return err
	}
	return domain.ErrReferenceExhausted
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.Passenger, error) {
	return s.passengers.GetByReference(ctx, reference)
}

// Cancel is the inverse of Book: status flips to CANCELLED and the flight
// counter is decremented in the same storage transaction. The repository's
// conditional transition lets exactly one of any set of concurrent cancels
// release the seat; the others are no-ops returning the cancelled row.
func (s *BookingService) Cancel(ctx context.Context, reference string) (*domain.Passenger, error) {
	passenger, released, err := s.passengers.Cancel(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !released {
		return passenger, nil
	}
	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_cancelled", passenger)
	return passenger, nil
}

func (s *BookingService) CheckIn(ctx context.Context, reference string) (*domain.Passenger, error) {
	updated, err := s.passengers.UpdateStatus(ctx, reference, domain.PassengerStatusConfirmed, domain.PassengerStatusCheckedIn)
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			current, gerr := s.passengers.GetByReference(ctx, reference)
			if gerr != nil {
				return nil, gerr
			}
			switch current.Status {
			case domain.PassengerStatusCancelled:
				return nil, domain.ErrBookingCancelled
			case domain.PassengerStatusCheckedIn:
				return nil, domain.ErrAlreadyCheckedIn
			}
		}
		return nil, err
	}
	s.publish(ctx, "passenger_checked_in", updated)
	return updated, nil
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.WithError(err).Warn("invalidate flights cache")
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, passenger *domain.Passenger) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		Reference:    passenger.Reference,
		FlightID:     passenger.FlightID,
		FlightNumber: passenger.FlightNumber,
		Seat:         passenger.Seat,
		FirstName:    passenger.FirstName,
		LastName:     passenger.LastName,
		Email:        passenger.Email,
		Status:       string(passenger.Status),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, passenger.Reference, event); err != nil {
		s.logger.WithError(err).WithField("reference", passenger.Reference).Warnf("publish %s event", eventType)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, passenger.Reference, event); err != nil {
			s.logger.WithError(err).WithField("reference", passenger.Reference).Warnf("publish %s notification", eventType)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
