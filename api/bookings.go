package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	FlightID  int64  `json:"flight_id" binding:"required"`
	SeatLabel string `json:"seat_label" binding:"required"`
}

type legRequest struct {
	FlightID  int64  `json:"flight_id" binding:"required"`
	SeatLabel string `json:"seat_label" binding:"required"`
}

type roundTripRequest struct {
	UserID   int64      `json:"user_id" binding:"required"`
	Outbound legRequest `json:"outbound" binding:"required"`
	Inbound  legRequest `json:"inbound" binding:"required"`
}

type changeSeatRequest struct {
	UserID       int64  `json:"user_id" binding:"required"`
	NewSeatLabel string `json:"new_seat_label" binding:"required"`
}

type bookingResponse struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	FlightID         int64  `json:"flight_id"`
	SeatLabel        string `json:"seat_label"`
	Status           string `json:"status"`
	TotalPrice       string `json:"total_price"`
	ConfirmationCode string `json:"confirmation_code"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

type roundTripResponse struct {
	Outbound bookingResponse `json:"outbound"`
	Inbound  bookingResponse `json:"inbound"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		FlightID:         b.FlightID,
		SeatLabel:        b.SeatLabel,
		Status:           string(b.Status),
		TotalPrice:       b.TotalPrice.String(),
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router, admin *gin.RouterGroup) {
	router.POST("/", h.create)
	router.POST("/round-trip", h.createRoundTrip)
	router.GET("/", h.list)
	router.DELETE("/:id", h.cancel)
	router.PATCH("/:id/seat", h.changeSeat)

	admin.DELETE("/:id", h.cancelAsAdmin)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:    req.UserID,
		FlightID:  req.FlightID,
		SeatLabel: req.SeatLabel,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) createRoundTrip(c *gin.Context) {
	var req roundTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.service.CreateRoundTrip(c.Request.Context(), booking.RoundTripInput{
		UserID:   req.UserID,
		Outbound: booking.Leg{FlightID: req.Outbound.FlightID, SeatLabel: req.Outbound.SeatLabel},
		Inbound:  booking.Leg{FlightID: req.Inbound.FlightID, SeatLabel: req.Inbound.SeatLabel},
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, roundTripResponse{
		Outbound: toBookingResponse(trip.Outbound),
		Inbound:  toBookingResponse(trip.Inbound),
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func (h *BookingHandler) cancelAsAdmin(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cancelled, err := h.service.CancelBookingAsAdmin(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func (h *BookingHandler) changeSeat(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req changeSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.ChangeSeat(c.Request.Context(), booking.ChangeSeatInput{
		BookingID:    bookingID,
		UserID:       req.UserID,
		NewSeatLabel: req.NewSeatLabel,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(updated))
}
