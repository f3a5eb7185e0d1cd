package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
	"github.com/jeffy-git/Airport-Management-System/internal/repository"
	"github.com/jeffy-git/Airport-Management-System/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	Number        string    `json:"number" binding:"required"`
	Airline       string    `json:"airline" binding:"required"`
	FromAirport   string    `json:"from_airport" binding:"required"`
	FromCity      string    `json:"from_city"`
	ToAirport     string    `json:"to_airport" binding:"required"`
	ToCity        string    `json:"to_city"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Aircraft      string    `json:"aircraft"`
	Gate          string    `json:"gate"`
	Status        string    `json:"status"`
	TotalSeats    int       `json:"total_seats" binding:"required,gt=0"`
	PriceCents    int64     `json:"price_cents" binding:"gte=0"`
}

func (req flightRequest) toInput() flights.FlightInput {
	return flights.FlightInput{
		Number:        req.Number,
		Airline:       req.Airline,
		FromAirport:   req.FromAirport,
		FromCity:      req.FromCity,
		ToAirport:     req.ToAirport,
		ToCity:        req.ToCity,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Aircraft:      req.Aircraft,
		Gate:          req.Gate,
		Status:        domain.FlightStatus(req.Status),
		TotalSeats:    req.TotalSeats,
		PriceCents:    req.PriceCents,
	}
}

type flightResponse struct {
	ID             int64  `json:"id"`
	Number         string `json:"number"`
	Airline        string `json:"airline"`
	FromAirport    string `json:"from_airport"`
	FromCity       string `json:"from_city,omitempty"`
	ToAirport      string `json:"to_airport"`
	ToCity         string `json:"to_city,omitempty"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Aircraft       string `json:"aircraft,omitempty"`
	Gate           string `json:"gate,omitempty"`
	Status         string `json:"status"`
	TotalSeats     int    `json:"total_seats"`
	BookedSeats    int    `json:"booked_seats"`
	AvailableSeats int    `json:"available_seats"`
	PriceCents     int64  `json:"price_cents"`
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		Number:         f.Number,
		Airline:        f.Airline,
		FromAirport:    f.FromAirport,
		FromCity:       f.FromCity,
		ToAirport:      f.ToAirport,
		ToCity:         f.ToCity,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:    f.ArrivalTime.Format(time.RFC3339),
		Aircraft:       f.Aircraft,
		Gate:           f.Gate,
		Status:         string(f.Status),
		TotalSeats:     f.TotalSeats,
		BookedSeats:    f.BookedSeats,
		AvailableSeats: f.TotalSeats - f.BookedSeats,
		PriceCents:     f.PriceCents,
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for i := range list {
		out = append(out, toFlightResponse(&list[i]))
	}
	return out
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.GET("/:id/passengers", h.passengers)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) search(c *gin.Context) {
	filter := repository.SearchFilter{
		FromAirport: c.Query("from"),
		ToAirport:   c.Query("to"),
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.DepartureDate = parsed
	}

	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) passengers(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}
	list, err := h.service.Passengers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]passengerResponse, 0, len(list))
	for i := range list {
		out = append(out, toPassengerResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, ok := flightID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func flightID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
