package usecase

import (
	"context"
	"time"

	"go-hiring-pipeline/internal/domain"
	"go-hiring-pipeline/pkg/email"
	"go-hiring-pipeline/pkg/logger"
)

// MailSender abstracts SMTP delivery so the notifier can be tested without a
// mail server
type MailSender interface {
	SendNotificationEmail(to string, data email.NotificationEmailData) error
	IsConfigured() bool
}

// notificationSubjects maps notification types to email subjects
var notificationSubjects = map[string]string{
	domain.NotificationRegistration: "Registration received",
	domain.NotificationResumeStatus: "Resume status update",
	domain.NotificationInterview:    "Interview update",
	domain.NotificationDocument:     "Document review update",
	domain.NotificationHire:         "Hiring decision",
}

type notifier struct {
	notificationRepo domain.NotificationRepository
	candidateRepo    domain.CandidateRepository
	mail             MailSender
}

// NewNotifier creates the notification side-channel. Both the stored record
// and the email delivery are fire-and-forget: a failure here never rolls back
// the state transition that triggered it.
func NewNotifier(
	notificationRepo domain.NotificationRepository,
	candidateRepo domain.CandidateRepository,
	mail MailSender,
) domain.NotificationEmitter {
	return &notifier{
		notificationRepo: notificationRepo,
		candidateRepo:    candidateRepo,
		mail:             mail,
	}
}

func (n *notifier) Emit(ctx context.Context, recipientID, notificationType, message string) {
	notification := &domain.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
	}

	if err := n.notificationRepo.Create(ctx, notification); err != nil {
		logger.Log.Warn("Failed to record notification",
			"recipient", recipientID, "type", notificationType, "error", err)
		return
	}

	if n.mail == nil || !n.mail.IsConfigured() {
		return
	}

	// Email delivery runs detached from the request so a slow or failing
	// SMTP server cannot delay or fail the pipeline operation
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		candidate, err := n.candidateRepo.GetByID(sendCtx, recipientID)
		if err != nil {
			logger.Log.Warn("Failed to resolve notification recipient",
				"recipient", recipientID, "error", err)
			return
		}

		subject, ok := notificationSubjects[notificationType]
		if !ok {
			subject = "Pipeline update"
		}

		err = n.mail.SendNotificationEmail(candidate.Email, email.NotificationEmailData{
			RecipientName: candidate.FullName,
			Subject:       subject,
			Message:       message,
		})
		if err != nil {
			logger.Log.Warn("Failed to deliver notification email",
				"recipient", recipientID, "type", notificationType, "error", err)
		}
	}()
}
