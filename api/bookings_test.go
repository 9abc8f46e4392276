package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CreateRoundTrip(ctx context.Context, input booking.RoundTripInput) (*booking.RoundTrip, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.RoundTrip), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBookingAsAdmin(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ChangeSeat(ctx context.Context, input booking.ChangeSeatInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) SweepDepartureReminders(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func newBookingRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewBookingHandler(service)
	handler.Register(router.Group("/api/v1/bookings"), router.Group("/api/v1/admin/bookings"))
	return router
}

func confirmedBooking() *domain.Booking {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:               1,
		UserID:           9,
		FlightID:         4,
		SeatLabel:        "12A",
		Status:           domain.BookingStatusConfirmed,
		TotalPrice:       decimal.RequireFromString("200.00"),
		ConfirmationCode: "AB12CD",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestBookingHandler_Create_Created(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("CreateBooking", mock.Anything, booking.CreateBookingInput{
		UserID: 9, FlightID: 4, SeatLabel: "12A",
	}).Return(confirmedBooking(), nil)

	body := bytes.NewBufferString(`{"user_id":9,"flight_id":4,"seat_label":"12A"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AB12CD", resp.ConfirmationCode)
	assert.Equal(t, "200", resp.TotalPrice)
	assert.Equal(t, "CONFIRMED", resp.Status)
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/", bytes.NewBufferString(`{"user_id":9}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_Create_SeatConflict(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrSeatUnavailable)

	body := bytes.NewBufferString(`{"user_id":9,"flight_id":4,"seat_label":"12A"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestBookingHandler_Create_FlightNotFound(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrFlightNotFound)

	body := bytes.NewBufferString(`{"user_id":9,"flight_id":404,"seat_label":"12A"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_RoundTrip_Created(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	outbound := confirmedBooking()
	inbound := confirmedBooking()
	inbound.ID = 2
	inbound.FlightID = 5
	inbound.SeatLabel = "14C"
	inbound.ConfirmationCode = "ZX98YW"
	service.On("CreateRoundTrip", mock.Anything, booking.RoundTripInput{
		UserID:   9,
		Outbound: booking.Leg{FlightID: 4, SeatLabel: "12A"},
		Inbound:  booking.Leg{FlightID: 5, SeatLabel: "14C"},
	}).Return(&booking.RoundTrip{Outbound: outbound, Inbound: inbound}, nil)

	body := bytes.NewBufferString(`{"user_id":9,"outbound":{"flight_id":4,"seat_label":"12A"},"inbound":{"flight_id":5,"seat_label":"14C"}}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/round-trip", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp roundTripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "AB12CD", resp.Outbound.ConfirmationCode)
	assert.Equal(t, "ZX98YW", resp.Inbound.ConfirmationCode)
}

func TestBookingHandler_RoundTrip_InboundConflict(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("CreateRoundTrip", mock.Anything, mock.Anything).
		Return(nil, domain.ErrSeatUnavailable)

	body := bytes.NewBufferString(`{"user_id":9,"outbound":{"flight_id":4,"seat_label":"12A"},"inbound":{"flight_id":5,"seat_label":"14C"}}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/round-trip", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingHandler_List(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("ListUserBookings", mock.Anything, int64(9)).Return([]domain.Booking{*confirmedBooking()}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/?user_id=9", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []bookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(1), resp[0].ID)
}

func TestBookingHandler_Cancel_OK(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	cancelled := confirmedBooking()
	cancelled.Status = domain.BookingStatusCancelled
	service.On("CancelBooking", mock.Anything, int64(1), int64(9)).Return(cancelled, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/1?user_id=9", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp bookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestBookingHandler_Cancel_AlreadyCancelled(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("CancelBooking", mock.Anything, int64(1), int64(9)).Return(nil, domain.ErrAlreadyCancelled)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/1?user_id=9", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingHandler_Cancel_BadID(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/abc?user_id=9", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_CancelAsAdmin_NoOwnershipCheck(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	cancelled := confirmedBooking()
	cancelled.Status = domain.BookingStatusCancelled
	service.On("CancelBookingAsAdmin", mock.Anything, int64(1)).Return(cancelled, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/1", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_ChangeSeat_OK(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	changed := confirmedBooking()
	changed.SeatLabel = "2A"
	changed.TotalPrice = decimal.RequireFromString("300.00")
	service.On("ChangeSeat", mock.Anything, booking.ChangeSeatInput{
		BookingID: 1, UserID: 9, NewSeatLabel: "2A",
	}).Return(changed, nil)

	body := bytes.NewBufferString(`{"user_id":9,"new_seat_label":"2A"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/seat", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp bookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2A", resp.SeatLabel)
	assert.Equal(t, "300", resp.TotalPrice)
}

func TestBookingHandler_ChangeSeat_NotEligible(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("ChangeSeat", mock.Anything, mock.Anything).Return(nil, domain.ErrNotEligible)

	body := bytes.NewBufferString(`{"user_id":9,"new_seat_label":"2A"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/seat", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
