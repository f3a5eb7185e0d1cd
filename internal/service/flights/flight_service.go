package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/jeffy-git/Airport-Management-System/internal/domain"
	"github.com/jeffy-git/Airport-Management-System/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	Passengers(ctx context.Context, flightID int64) ([]domain.Passenger, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// FlightInput carries every editable flight field. BookedSeats is never part
// of the input; only the booking transaction moves it.
type FlightInput struct {
	Number        string
	Airline       string
	FromAirport   string
	FromCity      string
	ToAirport     string
	ToCity        string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Aircraft      string
	Gate          string
	Status        domain.FlightStatus
	TotalSeats    int
	PriceCents    int64
}

func (in FlightInput) validate() error {
	switch {
	case in.Number == "":
		return fmt.Errorf("%w: flight number is required", domain.ErrValidation)
	case in.Airline == "":
		return fmt.Errorf("%w: airline is required", domain.ErrValidation)
	case in.FromAirport == "" || in.ToAirport == "":
		return fmt.Errorf("%w: departure and arrival airports are required", domain.ErrValidation)
	case in.TotalSeats <= 0:
		return fmt.Errorf("%w: total seats must be positive", domain.ErrValidation)
	case !in.ArrivalTime.After(in.DepartureTime):
		return fmt.Errorf("%w: arrival must be after departure", domain.ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown flight status %q", domain.ErrValidation, in.Status)
	}
	return nil
}

func (in FlightInput) apply(f *domain.Flight) {
	f.Number = in.Number
	f.Airline = in.Airline
	f.FromAirport = in.FromAirport
	f.FromCity = in.FromCity
	f.ToAirport = in.ToAirport
	f.ToCity = in.ToCity
	f.DepartureTime = in.DepartureTime
	f.ArrivalTime = in.ArrivalTime
	f.Aircraft = in.Aircraft
	f.Gate = in.Gate
	f.Status = in.Status
	if f.Status == "" {
		f.Status = domain.FlightStatusOnTime
	}
	f.TotalSeats = in.TotalSeats
	f.PriceCents = in.PriceCents
}

type FlightService struct {
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	cache      Cache
}

func NewFlightService(flights repository.FlightRepository, passengers repository.PassengerRepository, cache Cache) *FlightService {
	return &FlightService{flights: flights, passengers: passengers, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Flight, error) {
	return s.flights.Search(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	var flight domain.Flight
	input.apply(&flight)
	if err := s.flights.Create(ctx, &flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.TotalSeats < flight.BookedSeats {
		return nil, fmt.Errorf("%w: total seats cannot drop below %d booked", domain.ErrValidation, flight.BookedSeats)
	}
	input.apply(flight)
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Passengers(ctx context.Context, flightID int64) ([]domain.Passenger, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.passengers.ListByFlight(ctx, flightID)
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
