package repository

import (
	"context"

	"github.com/Domenick1991/skybooking/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, q Querier, n *domain.Notification) error
	ListByUser(ctx context.Context, q Querier, userID int64) ([]domain.Notification, error)
}

type PGNotificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &PGNotificationRepository{}
}

func (r *PGNotificationRepository) Create(ctx context.Context, q Querier, n *domain.Notification) error {
	return q.QueryRow(ctx, `INSERT INTO notifications (user_id, booking_id, flight_id, type, title, message, read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING id, created_at`,
		n.UserID, n.BookingID, n.FlightID, n.Type, n.Title, n.Message).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *PGNotificationRepository) ListByUser(ctx context.Context, q Querier, userID int64) ([]domain.Notification, error) {
	rows, err := q.Query(ctx, `SELECT id, user_id, booking_id, flight_id, type, title, message, read, created_at FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.BookingID, &n.FlightID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

var _ NotificationRepository = (*PGNotificationRepository)(nil)
