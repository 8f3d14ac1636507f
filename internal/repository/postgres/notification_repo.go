package postgres

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

// Create inserts a new notification
func (r *notificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, type, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	notification.CreatedAt = time.Now()

	return r.db.QueryRow(ctx, query,
		notification.RecipientID,
		notification.Type,
		notification.Message,
		notification.IsRead,
		notification.CreatedAt,
	).Scan(&notification.ID)
}

// ListByRecipient retrieves all notifications of a recipient, newest first
func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, type, message, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID, &notification.RecipientID, &notification.Type,
			&notification.Message, &notification.IsRead, &notification.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// MarkRead flags one notification as read, scoped to its recipient
func (r *notificationRepo) MarkRead(ctx context.Context, recipientID string, id int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.Exec(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Distinguish a missing row from an already-read one
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)`,
			id, recipientID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

// MarkAllRead flags every unread notification of the recipient as read
func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID)
	return err
}
