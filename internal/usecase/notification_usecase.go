package usecase

import (
	"context"
	"errors"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/apperror"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

// ListMine returns the recipient's notifications, newest first
func (uc *notificationUsecase) ListMine(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	notifications, err := uc.notificationRepo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read. Marking an already-read
// notification is a no-op, not an error.
func (uc *notificationUsecase) MarkRead(ctx context.Context, recipientID string, id int64) error {
	if err := uc.notificationRepo.MarkRead(ctx, recipientID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// MarkAllRead flags every notification of the recipient as read
func (uc *notificationUsecase) MarkAllRead(ctx context.Context, recipientID string) error {
	if err := uc.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
