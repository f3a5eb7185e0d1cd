package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
)

// SearchFilter narrows the flight list. Zero values match everything.
type SearchFilter struct {
	FromAirport   string
	ToAirport     string
	DepartureDate time.Time
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	ReconcileBookedSeats(ctx context.Context) ([]int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, number, airline, from_airport, from_city, to_airport, to_city, departure_time, arrival_time, aircraft, gate, status, total_seats, booked_seats, price_cents, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.Number, &f.Airline, &f.FromAirport, &f.FromCity, &f.ToAirport, &f.ToCity,
		&f.DepartureTime, &f.ArrivalTime, &f.Aircraft, &f.Gate, &f.Status, &f.TotalSeats, &f.BookedSeats,
		&f.PriceCents, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, filter SearchFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	args := make([]interface{}, 0, 3)
	if filter.FromAirport != "" {
		args = append(args, filter.FromAirport)
		query += fmt.Sprintf(` AND from_airport = $%d`, len(args))
	}
	if filter.ToAirport != "" {
		args = append(args, filter.ToAirport)
		query += fmt.Sprintf(` AND to_airport = $%d`, len(args))
	}
	if !filter.DepartureDate.IsZero() {
		args = append(args, filter.DepartureDate)
		query += fmt.Sprintf(` AND departure_time::date = $%d::date`, len(args))
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE number=$1`, number)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (number, airline, from_airport, from_city, to_airport, to_city, departure_time, arrival_time, aircraft, gate, status, total_seats, booked_seats, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13)
		RETURNING id, booked_seats, created_at, updated_at`,
		flight.Number, flight.Airline, flight.FromAirport, flight.FromCity, flight.ToAirport, flight.ToCity,
		flight.DepartureTime, flight.ArrivalTime, flight.Aircraft, flight.Gate, flight.Status, flight.TotalSeats, flight.PriceCents).
		Scan(&flight.ID, &flight.BookedSeats, &flight.CreatedAt, &flight.UpdatedAt)
}

// Update overwrites the descriptive fields. BookedSeats is owned by the
// booking transaction and is deliberately not written here.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET number=$2, airline=$3, from_airport=$4, from_city=$5, to_airport=$6, to_city=$7, departure_time=$8, arrival_time=$9, aircraft=$10, gate=$11, status=$12, total_seats=$13, price_cents=$14, updated_at=now()
		WHERE id=$1
		RETURNING booked_seats, created_at, updated_at`,
		flight.ID, flight.Number, flight.Airline, flight.FromAirport, flight.FromCity, flight.ToAirport, flight.ToCity,
		flight.DepartureTime, flight.ArrivalTime, flight.Aircraft, flight.Gate, flight.Status, flight.TotalSeats, flight.PriceCents)
	if err := row.Scan(&flight.BookedSeats, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFlightNotFound
		}
		return err
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// ReconcileBookedSeats resets every drifted counter to the number of
// non-cancelled passenger records and returns the repaired flight ids. Drift
// can only appear if the process dies between the passenger insert and the
// counter commit, or through out-of-band writes.
func (r *PGFlightRepository) ReconcileBookedSeats(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `UPDATE flights f SET booked_seats = c.n, updated_at = now()
		FROM (
			SELECT fl.id, COUNT(p.id) FILTER (WHERE p.status <> 'CANCELLED') AS n
			FROM flights fl
			LEFT JOIN passengers p ON p.flight_id = fl.id
			GROUP BY fl.id
		) c
		WHERE f.id = c.id AND f.booked_seats <> c.n
		RETURNING f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repaired []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		repaired = append(repaired, id)
	}
	return repaired, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
