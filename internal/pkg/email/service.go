// internal/pkg/email/service.go
package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/spicerack-backend/internal/config"
)

// EmailService delivers email through the configured provider.
// Message content is composed by callers; this service only transports.
type EmailService struct {
	config *config.Config
	client *http.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send sends an email using the configured provider
func (s *EmailService) Send(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "sendgrid":
		return s.sendSendGridEmail(ctx, email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendEmail delivers one HTML email to one recipient. This is the
// surface the notification dispatcher depends on.
func (s *EmailService) SendEmail(ctx context.Context, to, subject, html string) error {
	return s.Send(ctx, &Email{
		To:          []string{to},
		Subject:     subject,
		HTMLContent: html,
	})
}
