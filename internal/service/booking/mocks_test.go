package booking

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/skybooking/internal/domain"
	"github.com/Domenick1991/skybooking/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, q repository.Querier, booking *domain.Booking) error {
	args := m.Called(ctx, q, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, q repository.Querier, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByIDForUser(ctx context.Context, q repository.Querier, id, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, q repository.Querier, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, q repository.Querier, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, q, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateSeat(ctx context.Context, q repository.Querier, id int64, seatLabel string, total decimal.Decimal) (*domain.Booking, error) {
	args := m.Called(ctx, q, id, seatLabel, total)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CodeExists(ctx context.Context, q repository.Querier, code string) (bool, error) {
	args := m.Called(ctx, q, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListConfirmedDepartingBetween(ctx context.Context, q repository.Querier, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, q, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, q repository.Querier) ([]domain.Flight, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, q repository.Querier, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) GetByFlightAndLabel(ctx context.Context, q repository.Querier, flightID int64, label string) (*domain.Seat, error) {
	args := m.Called(ctx, q, flightID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) ListByFlight(ctx context.Context, q repository.Querier, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, q, flightID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepository) Claim(ctx context.Context, q repository.Querier, flightID int64, label string) error {
	args := m.Called(ctx, q, flightID, label)
	return args.Error(0)
}

func (m *MockSeatRepository) Release(ctx context.Context, q repository.Querier, flightID int64, label string) error {
	args := m.Called(ctx, q, flightID, label)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, q repository.Querier, n *domain.Notification) error {
	args := m.Called(ctx, q, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, q repository.Querier, userID int64) ([]domain.Notification, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(booking domain.Booking, kind domain.NotificationType) {
	m.Called(booking, kind)
}

// fakeTxManager runs the callback directly and records the outcome the
// real manager would have applied.
type fakeTxManager struct {
	mu         sync.Mutex
	committed  int
	rolledBack int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, q repository.Querier) error) error {
	err := fn(ctx, nil)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rolledBack++
	} else {
		f.committed++
	}
	return err
}

var _ repository.Transactor = (*fakeTxManager)(nil)
