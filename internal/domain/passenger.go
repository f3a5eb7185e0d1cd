package domain

import "time"

type PassengerStatus string

const (
	PassengerStatusConfirmed PassengerStatus = "CONFIRMED"
	PassengerStatusCancelled PassengerStatus = "CANCELLED"
	PassengerStatusCheckedIn PassengerStatus = "CHECKED_IN"
)

// Passenger is a booking record. Seat and Reference are assigned exactly once
// by the booking transaction and are immutable afterwards; only Status moves.
type Passenger struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Passport     string
	FlightID     int64
	FlightNumber string
	Seat         string
	Reference    string
	Status       PassengerStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
