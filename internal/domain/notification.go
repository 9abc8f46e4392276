package domain

import "time"

type NotificationType string

const (
	NotificationBookingConfirmed  NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCancelled  NotificationType = "BOOKING_CANCELLED"
	NotificationSeatChanged       NotificationType = "SEAT_CHANGED"
	NotificationDepartureReminder NotificationType = "DEPARTURE_REMINDER"
)

// Notification rows are append-only; only the Read flag is flipped later,
// outside the booking core.
type Notification struct {
	ID        int64
	UserID    int64
	BookingID *int64
	FlightID  *int64
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
