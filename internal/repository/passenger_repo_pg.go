package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
)

type PassengerRepository interface {
	// CreateConfirmed inserts the passenger and increments the flight counter
	// in one transaction. The counter update succeeds only while booked_seats
	// still equals expectedBookedSeats, so two bookings can never both claim
	// the same sequence index.
	CreateConfirmed(ctx context.Context, passenger *domain.Passenger, expectedBookedSeats int) error
	GetByReference(ctx context.Context, reference string) (*domain.Passenger, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error)
	// Cancel flips a non-cancelled booking to CANCELLED and releases its seat
	// in the same transaction. The bool reports whether this call performed
	// the transition; a repeat cancel returns the stored row with false, so
	// concurrent cancels settle on exactly one counter decrement.
	Cancel(ctx context.Context, reference string) (*domain.Passenger, bool, error)
	// UpdateStatus transitions the booking from one status to another. A row
	// in any other state is left untouched and ErrStatusConflict is returned.
	UpdateStatus(ctx context.Context, reference string, from, to domain.PassengerStatus) (*domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, first_name, last_name, email, phone, passport, flight_id, flight_number, seat, reference, status, created_at, updated_at`

func scanPassenger(row pgx.Row, p *domain.Passenger) error {
	return row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Passport,
		&p.FlightID, &p.FlightNumber, &p.Seat, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PGPassengerRepository) CreateConfirmed(ctx context.Context, passenger *domain.Passenger, expectedBookedSeats int) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET booked_seats = booked_seats + 1, updated_at = now()
		WHERE id=$1 AND booked_seats=$2 AND booked_seats < total_seats`,
		passenger.FlightID, expectedBookedSeats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Someone else moved the counter since the caller read it.
		return domain.ErrContention
	}

	passenger.Status = domain.PassengerStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO passengers (id, first_name, last_name, email, phone, passport, flight_id, flight_number, seat, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		passenger.ID, passenger.FirstName, passenger.LastName, passenger.Email, passenger.Phone, passenger.Passport,
		passenger.FlightID, passenger.FlightNumber, passenger.Seat, passenger.Reference, passenger.Status).
		Scan(&passenger.CreatedAt, &passenger.UpdatedAt); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if isReferenceConstraint(constraint) {
				return domain.ErrDuplicateReference
			}
			// Seat index collision. Cannot happen while the counter guard
			// above holds, but surface it as a retryable conflict anyway.
			return domain.ErrContention
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGPassengerRepository) GetByReference(ctx context.Context, reference string) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE reference=$1`, reference)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE flight_id=$1 ORDER BY created_at`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := scanPassenger(rows, &p); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) Cancel(ctx context.Context, reference string) (*domain.Passenger, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `UPDATE passengers SET status=$1, updated_at=now()
		WHERE reference=$2 AND status <> $1
		RETURNING `+passengerColumns, domain.PassengerStatusCancelled, reference)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing, or a concurrent cancel won the conditional update.
			row := tx.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE reference=$1`, reference)
			var existing domain.Passenger
			if err := scanPassenger(row, &existing); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, false, domain.ErrBookingNotFound
				}
				return nil, false, err
			}
			return &existing, false, tx.Commit(ctx)
		}
		return nil, false, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET booked_seats = booked_seats - 1, updated_at = now()
		WHERE id=$1 AND booked_seats > 0`, p.FlightID); err != nil {
		return nil, false, err
	}
	return &p, true, tx.Commit(ctx)
}

func (r *PGPassengerRepository) UpdateStatus(ctx context.Context, reference string, from, to domain.PassengerStatus) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `UPDATE passengers SET status=$1, updated_at=now()
		WHERE reference=$2 AND status=$3 RETURNING `+passengerColumns, to, reference, from)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM passengers WHERE reference=$1)`, reference).Scan(&exists); err != nil {
				return nil, err
			}
			if !exists {
				return nil, domain.ErrBookingNotFound
			}
			return nil, domain.ErrStatusConflict
		}
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
