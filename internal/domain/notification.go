package domain

import (
	"context"
	"time"
)

// Notification type constants
const (
	NotificationRegistration = "REGISTRATION"
	NotificationResumeStatus = "RESUME_STATUS"
	NotificationInterview    = "INTERVIEW"
	NotificationDocument     = "DOCUMENT"
	NotificationHire         = "HIRE"
)

// Notification is an immutable record produced by pipeline transitions,
// never by UI actions directly. Only the read flag changes after creation.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationEmitter is the side-channel every stage transition reports
// through. Emission is fire-and-forget: failures are logged by the
// implementation and never surfaced to the triggering operation.
type NotificationEmitter interface {
	Emit(ctx context.Context, recipientID, notificationType, message string)
}

// NotificationRepository defines data access methods for notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID string, id int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

// NotificationUsecase defines candidate-facing notification reads
type NotificationUsecase interface {
	ListMine(ctx context.Context, recipientID string) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID string, id int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
