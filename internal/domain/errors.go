package domain

import "errors"

var (
	ErrFlightNotFound     = errors.New("flight not found")
	ErrFlightFull         = errors.New("flight is fully booked")
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateReference = errors.New("booking reference already exists")
	ErrContention         = errors.New("concurrent booking conflict")
	ErrReferenceExhausted = errors.New("failed to generate a unique booking reference")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrStatusConflict     = errors.New("booking status changed concurrently")
	ErrBookingCancelled   = errors.New("booking is cancelled")
	ErrAlreadyCheckedIn   = errors.New("passenger is already checked in")
)
