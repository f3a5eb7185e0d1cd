package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
	"github.com/jeffy-git/Airport-Management-System/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID  int64  `json:"flight_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Passport  string `json:"passport_number"`
}

type passengerResponse struct {
	ID           string `json:"id"`
	Reference    string `json:"reference"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Passport     string `json:"passport_number,omitempty"`
	FlightID     int64  `json:"flight_id"`
	FlightNumber string `json:"flight_number"`
	Seat         string `json:"seat"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

func toPassengerResponse(p *domain.Passenger) passengerResponse {
	return passengerResponse{
		ID:           p.ID,
		Reference:    p.Reference,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		Passport:     p.Passport,
		FlightID:     p.FlightID,
		FlightNumber: p.FlightNumber,
		Seat:         p.Seat,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:reference", h.get)
	router.DELETE("/:reference", h.cancel)
	router.POST("/:reference/checkin", h.checkIn)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger, err := h.service.Book(c.Request.Context(), booking.BookPassengerInput{
		FlightID:  req.FlightID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Passport:  req.Passport,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPassengerResponse(passenger))
}

func (h *BookingHandler) get(c *gin.Context) {
	passenger, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	passenger, err := h.service.Cancel(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}

func (h *BookingHandler) checkIn(c *gin.Context) {
	passenger, err := h.service.CheckIn(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPassengerResponse(passenger))
}
