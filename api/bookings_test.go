package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jeffy-git/Airport-Management-System/internal/domain"
	"github.com/jeffy-git/Airport-Management-System/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookPassengerInput) (*domain.Passenger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) GetByReference(ctx context.Context, reference string) (*domain.Passenger, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, reference string) (*domain.Passenger, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockBookingUseCase) CheckIn(ctx context.Context, reference string) (*domain.Passenger, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func confirmedPassenger() *domain.Passenger {
	return &domain.Passenger{
		ID:           "3d9f0c1e-0000-0000-0000-000000000001",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		FlightID:     4,
		FlightNumber: "AA101",
		Seat:         "1A",
		Reference:    "FLAB12CD34",
		Status:       domain.PassengerStatusConfirmed,
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{
		"flight_id":  4,
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Book", c.Request.Context(), booking.BookPassengerInput{
		FlightID:  4,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}).Return(confirmedPassenger(), nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response passengerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FLAB12CD34", response.Reference)
	assert.Equal(t, "1A", response.Seat)
	assert.Equal(t, string(domain.PassengerStatusConfirmed), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_BindingError(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(map[string]interface{}{"flight_id": 4, "email": "not-an-email"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Book")
}

func TestBookingHandler_create_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"flight not found", domain.ErrFlightNotFound, http.StatusNotFound},
		{"flight full", domain.ErrFlightFull, http.StatusConflict},
		{"contention", domain.ErrContention, http.StatusInternalServerError},
		{"reference exhausted", domain.ErrReferenceExhausted, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			body, _ := json.Marshal(map[string]interface{}{
				"flight_id":  4,
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"email":      "ada@example.com",
			})
			c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			mockService.On("Book", c.Request.Context(), mock.Anything).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "reference", Value: "FLAB12CD34"}}
	c.Request = httptest.NewRequest("GET", "/bookings/FLAB12CD34", nil)

	mockService.On("GetByReference", c.Request.Context(), "FLAB12CD34").Return(confirmedPassenger(), nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "reference", Value: "FLNOPE0000"}}
	c.Request = httptest.NewRequest("GET", "/bookings/FLNOPE0000", nil)

	mockService.On("GetByReference", c.Request.Context(), "FLNOPE0000").Return(nil, domain.ErrBookingNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "reference", Value: "FLAB12CD34"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/FLAB12CD34", nil)

	cancelled := confirmedPassenger()
	cancelled.Status = domain.PassengerStatusCancelled
	mockService.On("Cancel", c.Request.Context(), "FLAB12CD34").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response passengerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(domain.PassengerStatusCancelled), response.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_checkIn(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "reference", Value: "FLAB12CD34"}}
	c.Request = httptest.NewRequest("POST", "/bookings/FLAB12CD34/checkin", nil)

	checkedIn := confirmedPassenger()
	checkedIn.Status = domain.PassengerStatusCheckedIn
	mockService.On("CheckIn", c.Request.Context(), "FLAB12CD34").Return(checkedIn, nil)

	handler.checkIn(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response passengerResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(domain.PassengerStatusCheckedIn), response.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_checkIn_Conflicts(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"cancelled", domain.ErrBookingCancelled},
		{"already checked in", domain.ErrAlreadyCheckedIn},
		{"status moved concurrently", domain.ErrStatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			c.Params = gin.Params{{Key: "reference", Value: "FLAB12CD34"}}
			c.Request = httptest.NewRequest("POST", "/bookings/FLAB12CD34/checkin", nil)

			mockService.On("CheckIn", c.Request.Context(), "FLAB12CD34").Return(nil, tc.err)

			handler.checkIn(c)

			assert.Equal(t, http.StatusConflict, w.Code)
		})
	}
}
