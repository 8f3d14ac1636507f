package email

import (
	"bytes"
	"fmt"
	"go-hiring-pipeline/config"
	"html/template"
	"net/smtp"
)

// EmailService delivers pipeline notifications via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NotificationEmailData holds the data for notification emails
type NotificationEmailData struct {
	RecipientName string
	Subject       string
	Message       string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// notificationEmailTemplate is the HTML template for pipeline notifications
const notificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Subject}}</h1>
        </div>
        <div class="content">
            <p>Hello {{.RecipientName}},</p>
            <div class="message-box">{{.Message}}</div>
        </div>
        <div class="footer">
            <p>This is an automated message from the hiring pipeline. Please do not reply.</p>
        </div>
    </div>
</body>
</html>`

// SendNotificationEmail sends a pipeline notification to the given address
func (s *EmailService) SendNotificationEmail(to string, data NotificationEmailData) error {
	tmpl, err := template.New("notification").Parse(notificationEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		data.Subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
