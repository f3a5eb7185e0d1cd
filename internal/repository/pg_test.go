package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "passengers_reference_key"}

	name, ok := uniqueViolation(pgErr)
	assert.True(t, ok)
	assert.Equal(t, "passengers_reference_key", name)
}

func TestUniqueViolation_Wrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "passengers_flight_seat_live_idx"}
	wrapped := fmt.Errorf("insert passenger: %w", pgErr)

	name, ok := uniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "passengers_flight_seat_live_idx", name)
}

func TestUniqueViolation_OtherErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("connection reset")},
		{"other pg code", &pgconn.PgError{Code: "23503"}},
		{"nil", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := uniqueViolation(tc.err)
			assert.False(t, ok)
		})
	}
}

func TestIsReferenceConstraint(t *testing.T) {
	assert.True(t, isReferenceConstraint("passengers_reference_key"))
	assert.False(t, isReferenceConstraint("passengers_flight_seat_live_idx"))
	assert.False(t, isReferenceConstraint(""))
}
