// internal/pkg/email/api_providers.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Resend API structures
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type ResendResponse struct {
	ID string `json:"id"`
}

// SendGrid API structures
type SendGridEmailRequest struct {
	Personalizations []SendGridPersonalization `json:"personalizations"`
	From             SendGridEmail             `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []SendGridContent         `json:"content"`
	ReplyTo          *SendGridEmail            `json:"reply_to,omitempty"`
}

type SendGridPersonalization struct {
	To []SendGridEmail `json:"to"`
}

type SendGridEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type SendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// fromAddress formats the configured sender as "Name <email>"
func (s *EmailService) fromAddress() string {
	fromEmail := s.config.External.Email.FromEmail
	fromName := s.config.External.Email.FromName
	if fromName != "" {
		return fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return fromEmail
}

// sendResendEmail sends email using Resend API (Free: 3,000 emails/month)
func (s *EmailService) sendResendEmail(ctx context.Context, email *Email) error {
	apiKey := s.config.External.Email.APIKey
	if apiKey == "" {
		return fmt.Errorf("Resend API key not configured")
	}

	reqData := ResendEmailRequest{
		From:    s.fromAddress(),
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		ReplyTo: s.config.External.Email.ReplyTo,
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return fmt.Errorf("failed to marshal Resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create Resend request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Resend API returned status %d", resp.StatusCode)
	}

	return nil
}

// sendSendGridEmail sends email using SendGrid API (Free: 100 emails/day)
func (s *EmailService) sendSendGridEmail(ctx context.Context, email *Email) error {
	apiKey := s.config.External.Email.APIKey
	if apiKey == "" {
		return fmt.Errorf("SendGrid API key not configured")
	}

	var to []SendGridEmail
	for _, recipient := range email.To {
		to = append(to, SendGridEmail{Email: recipient})
	}

	from := SendGridEmail{
		Email: s.config.External.Email.FromEmail,
		Name:  s.config.External.Email.FromName,
	}

	var replyTo *SendGridEmail
	if s.config.External.Email.ReplyTo != "" {
		replyTo = &SendGridEmail{Email: s.config.External.Email.ReplyTo}
	}

	reqData := SendGridEmailRequest{
		Personalizations: []SendGridPersonalization{
			{To: to},
		},
		From:    from,
		Subject: email.Subject,
		Content: []SendGridContent{
			{
				Type:  "text/html",
				Value: email.HTMLContent,
			},
		},
		ReplyTo: replyTo,
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.sendgrid.com/v3/mail/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SendGrid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("SendGrid API returned status %d", resp.StatusCode)
	}

	return nil
}
