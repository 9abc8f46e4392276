package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/pricing"
	"github.com/Domenick1991/skybooking/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CreateRoundTrip(ctx context.Context, input RoundTripInput) (*RoundTrip, error)
	CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	CancelBookingAsAdmin(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ChangeSeat(ctx context.Context, input ChangeSeatInput) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	SweepDepartureReminders(ctx context.Context, from, to time.Time) (int, error)
}

// Dispatcher delivers post-commit side effects (push/email, invoice).
// Best effort: implementations log their own failures and never block
// or fail the booking that triggered them.
type Dispatcher interface {
	Dispatch(booking domain.Booking, kind domain.NotificationType)
}

// Cache invalidates read-side seat maps after seat mutations.
type Cache interface {
	InvalidateSeatMap(ctx context.Context, flightID int64) error
}

type BookingService struct {
	db            repository.Querier
	txm           repository.Transactor
	bookings      repository.BookingRepository
	flights       repository.FlightRepository
	seats         repository.SeatRepository
	notifications repository.NotificationRepository
	dispatcher    Dispatcher
	cache         Cache
	log           *zap.Logger
}

type CreateBookingInput struct {
	UserID    int64  `json:"user_id"`
	FlightID  int64  `json:"flight_id"`
	SeatLabel string `json:"seat_label"`
}

type Leg struct {
	FlightID  int64  `json:"flight_id"`
	SeatLabel string `json:"seat_label"`
}

type RoundTripInput struct {
	UserID   int64 `json:"user_id"`
	Outbound Leg   `json:"outbound"`
	Inbound  Leg   `json:"inbound"`
}

type RoundTrip struct {
	Outbound *domain.Booking `json:"outbound"`
	Inbound  *domain.Booking `json:"inbound"`
}

type ChangeSeatInput struct {
	BookingID    int64  `json:"booking_id"`
	UserID       int64  `json:"user_id"`
	NewSeatLabel string `json:"new_seat_label"`
}

type BookingServiceOption func(*BookingService)

func WithDispatcher(d Dispatcher) BookingServiceOption {
	return func(s *BookingService) { s.dispatcher = d }
}

func WithCache(c Cache) BookingServiceOption {
	return func(s *BookingService) { s.cache = c }
}

func WithLogger(log *zap.Logger) BookingServiceOption {
	return func(s *BookingService) { s.log = log }
}

func NewBookingService(
	db repository.Querier,
	txm repository.Transactor,
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	seats repository.SeatRepository,
	notifications repository.NotificationRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		db:            db,
		txm:           txm,
		bookings:      bookings,
		flights:       flights,
		seats:         seats,
		notifications: notifications,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 {
		return nil, errors.New("user id must be positive")
	}
	if input.SeatLabel == "" {
		return nil, errors.New("seat label is required")
	}

	var created *domain.Booking
	err := s.txm.WithinTx(ctx, func(ctx context.Context, q repository.Querier) error {
		b, err := s.bookLeg(ctx, q, input.UserID, input.FlightID, input.SeatLabel)
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.Int64("booking_id", created.ID),
		zap.Int64("flight_id", created.FlightID),
		zap.String("seat", created.SeatLabel),
		zap.String("code", created.ConfirmationCode),
	)
	s.afterCommit(ctx, *created, domain.NotificationBookingConfirmed)
	return created, nil
}

// CreateRoundTrip books both legs inside one outer transaction: if the
// inbound claim loses, the outbound claim and insert roll back with it.
func (s *BookingService) CreateRoundTrip(ctx context.Context, input RoundTripInput) (*RoundTrip, error) {
	if input.UserID <= 0 {
		return nil, errors.New("user id must be positive")
	}
	if input.Outbound.SeatLabel == "" || input.Inbound.SeatLabel == "" {
		return nil, errors.New("seat label is required for both legs")
	}

	var trip RoundTrip
	err := s.txm.WithinTx(ctx, func(ctx context.Context, q repository.Querier) error {
		outbound, err := s.bookLeg(ctx, q, input.UserID, input.Outbound.FlightID, input.Outbound.SeatLabel)
		if err != nil {
			return fmt.Errorf("outbound leg: %w", err)
		}
		inbound, err := s.bookLeg(ctx, q, input.UserID, input.Inbound.FlightID, input.Inbound.SeatLabel)
		if err != nil {
			return fmt.Errorf("inbound leg: %w", err)
		}
		trip.Outbound = outbound
		trip.Inbound = inbound
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("round trip created",
		zap.Int64("outbound_booking_id", trip.Outbound.ID),
		zap.Int64("inbound_booking_id", trip.Inbound.ID),
	)
	s.afterCommit(ctx, *trip.Outbound, domain.NotificationBookingConfirmed)
	s.afterCommit(ctx, *trip.Inbound, domain.NotificationBookingConfirmed)
	return &trip, nil
}

// bookLeg runs the booking steps on the caller's transaction handle:
// flight lookup, fast availability check, conditional seat claim, price,
// confirmation code, booking row, notification row.
func (s *BookingService) bookLeg(ctx context.Context, q repository.Querier, userID, flightID int64, seatLabel string) (*domain.Booking, error) {
	flight, err := s.flights.GetByID(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	if flight.Departed(time.Now()) {
		return nil, domain.ErrFlightDeparted
	}

	seat, err := s.seats.GetByFlightAndLabel(ctx, q, flightID, seatLabel)
	if err != nil {
		return nil, err
	}
	if !seat.Available {
		return nil, domain.ErrSeatUnavailable
	}

	// The fast check above can go stale between steps; the conditional
	// claim is the authoritative one.
	if err := s.seats.Claim(ctx, q, flightID, seatLabel); err != nil {
		return nil, err
	}

	total := pricing.Total(flight.BaseFare, seat.Modifier)

	code, err := allocateCode(ctx, q, s.bookings)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:           userID,
		FlightID:         flightID,
		SeatLabel:        seatLabel,
		Status:           domain.BookingStatusConfirmed,
		TotalPrice:       total,
		ConfirmationCode: code,
	}
	if err := s.bookings.Create(ctx, q, booking); err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		UserID:    userID,
		BookingID: &booking.ID,
		FlightID:  &flightID,
		Type:      domain.NotificationBookingConfirmed,
		Title:     "Booking confirmed",
		Message:   fmt.Sprintf("Seat %s on flight %d is booked. Confirmation code: %s", seatLabel, flightID, code),
	}
	if err := s.notifications.Create(ctx, q, notification); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.cancel(ctx, bookingID, &userID)
}

// CancelBookingAsAdmin cancels without the ownership filter; all other
// state checks are identical to the customer path.
func (s *BookingService) CancelBookingAsAdmin(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.cancel(ctx, bookingID, nil)
}

func (s *BookingService) cancel(ctx context.Context, bookingID int64, userID *int64) (*domain.Booking, error) {
	var cancelled *domain.Booking
	err := s.txm.WithinTx(ctx, func(ctx context.Context, q repository.Querier) error {
		var current *domain.Booking
		var err error
		if userID != nil {
			current, err = s.bookings.GetByIDForUser(ctx, q, bookingID, *userID)
		} else {
			current, err = s.bookings.GetByID(ctx, q, bookingID)
		}
		if err != nil {
			return err
		}
		if current.Status == domain.BookingStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		flight, err := s.flights.GetByID(ctx, q, current.FlightID)
		if err != nil {
			return err
		}
		if flight.Departed(time.Now()) {
			return domain.ErrFlightDeparted
		}

		updated, err := s.bookings.UpdateStatus(ctx, q, bookingID, domain.BookingStatusCancelled)
		if err != nil {
			return err
		}

		// A cancelled booking's seat always goes back to the pool.
		if err := s.seats.Release(ctx, q, current.FlightID, current.SeatLabel); err != nil {
			return err
		}

		notification := &domain.Notification{
			UserID:    current.UserID,
			BookingID: &current.ID,
			FlightID:  &current.FlightID,
			Type:      domain.NotificationBookingCancelled,
			Title:     "Booking cancelled",
			Message:   fmt.Sprintf("Booking %s for seat %s on flight %d has been cancelled", current.ConfirmationCode, current.SeatLabel, current.FlightID),
		}
		if err := s.notifications.Create(ctx, q, notification); err != nil {
			return err
		}

		cancelled = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled",
		zap.Int64("booking_id", cancelled.ID),
		zap.String("seat", cancelled.SeatLabel),
	)
	s.afterCommit(ctx, *cancelled, domain.NotificationBookingCancelled)
	return cancelled, nil
}

func (s *BookingService) ChangeSeat(ctx context.Context, input ChangeSeatInput) (*domain.Booking, error) {
	if input.NewSeatLabel == "" {
		return nil, errors.New("new seat label is required")
	}

	var updated *domain.Booking
	var oldSeat string
	err := s.txm.WithinTx(ctx, func(ctx context.Context, q repository.Querier) error {
		current, err := s.bookings.GetByIDForUser(ctx, q, input.BookingID, input.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return domain.ErrNotEligible
			}
			return err
		}
		if current.Status != domain.BookingStatusConfirmed {
			return domain.ErrNotEligible
		}
		if current.SeatLabel == input.NewSeatLabel {
			return domain.ErrSeatUnavailable
		}

		flight, err := s.flights.GetByID(ctx, q, current.FlightID)
		if err != nil {
			return err
		}
		if flight.Departed(time.Now()) {
			return domain.ErrFlightDeparted
		}

		seat, err := s.seats.GetByFlightAndLabel(ctx, q, current.FlightID, input.NewSeatLabel)
		if err != nil {
			return err
		}
		if !seat.Available {
			return domain.ErrSeatUnavailable
		}
		if err := s.seats.Claim(ctx, q, current.FlightID, input.NewSeatLabel); err != nil {
			return err
		}
		if err := s.seats.Release(ctx, q, current.FlightID, current.SeatLabel); err != nil {
			return err
		}

		total := pricing.Total(flight.BaseFare, seat.Modifier)
		changed, err := s.bookings.UpdateSeat(ctx, q, current.ID, input.NewSeatLabel, total)
		if err != nil {
			return err
		}

		notification := &domain.Notification{
			UserID:    current.UserID,
			BookingID: &current.ID,
			FlightID:  &current.FlightID,
			Type:      domain.NotificationSeatChanged,
			Title:     "Seat changed",
			Message:   fmt.Sprintf("Booking %s moved from seat %s to %s on flight %d", current.ConfirmationCode, current.SeatLabel, input.NewSeatLabel, current.FlightID),
		}
		if err := s.notifications.Create(ctx, q, notification); err != nil {
			return err
		}

		oldSeat = current.SeatLabel
		updated = changed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("seat changed",
		zap.Int64("booking_id", updated.ID),
		zap.String("old_seat", oldSeat),
		zap.String("new_seat", updated.SeatLabel),
	)
	s.afterCommit(ctx, *updated, domain.NotificationSeatChanged)
	return updated, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, s.db, userID)
}

// SweepDepartureReminders inserts reminder notifications for confirmed
// bookings whose flight departs within [from, to). The worker calls it
// with disjoint windows so passengers are reminded once.
func (s *BookingService) SweepDepartureReminders(ctx context.Context, from, to time.Time) (int, error) {
	var reminded []domain.Booking
	err := s.txm.WithinTx(ctx, func(ctx context.Context, q repository.Querier) error {
		bookings, err := s.bookings.ListConfirmedDepartingBetween(ctx, q, from, to)
		if err != nil {
			return err
		}
		for _, b := range bookings {
			notification := &domain.Notification{
				UserID:    b.UserID,
				BookingID: &b.ID,
				FlightID:  &b.FlightID,
				Type:      domain.NotificationDepartureReminder,
				Title:     "Upcoming departure",
				Message:   fmt.Sprintf("Flight %d departs soon, seat %s, confirmation code %s", b.FlightID, b.SeatLabel, b.ConfirmationCode),
			}
			if err := s.notifications.Create(ctx, q, notification); err != nil {
				return err
			}
		}
		reminded = bookings
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, b := range reminded {
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(b, domain.NotificationDepartureReminder)
		}
	}
	return len(reminded), nil
}

// afterCommit runs the best-effort side effects. Failures are logged
// here or inside the dispatcher; the committed booking is never touched.
func (s *BookingService) afterCommit(ctx context.Context, b domain.Booking, kind domain.NotificationType) {
	if s.cache != nil {
		if err := s.cache.InvalidateSeatMap(ctx, b.FlightID); err != nil {
			s.log.Warn("invalidate seat map", zap.Int64("flight_id", b.FlightID), zap.Error(err))
		}
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(b, kind)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
