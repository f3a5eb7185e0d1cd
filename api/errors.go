package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFlightFull),
		errors.Is(err, domain.ErrBookingCancelled),
		errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrStatusConflict):
		return http.StatusConflict
	default:
		// Contention, reference exhaustion and storage failures are all
		// server-side conditions from the caller's point of view.
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
