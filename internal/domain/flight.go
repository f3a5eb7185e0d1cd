package domain

import "time"

type FlightStatus string

const (
	FlightStatusOnTime    FlightStatus = "ON_TIME"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
)

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightStatusOnTime, FlightStatusDelayed, FlightStatusCancelled, FlightStatusBoarding:
		return true
	}
	return false
}

// Flight is the bookable inventory unit. BookedSeats is mutated only by the
// booking transaction (increment) and the cancellation path (decrement) and
// never exceeds TotalSeats.
type Flight struct {
	ID            int64
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
	Status        FlightStatus
	TotalSeats    int
	BookedSeats   int
	PriceCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
