// internal/pkg/sms/twilio.go
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/your-org/spicerack-backend/internal/config"
)

// Client sends text messages through the Twilio REST API.
type Client struct {
	config *config.Config
	client *http.Client
}

// NewClient creates a new SMS client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendSMS delivers one text message to one recipient. This is the
// surface the notification dispatcher depends on.
func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	sms := c.config.External.SMS
	if sms.AccountSID == "" || sms.AuthToken == "" || sms.FromNumber == "" {
		return fmt.Errorf("Twilio credentials not configured")
	}

	form := url.Values{}
	form.Set("To", FormatPhoneNumber(to))
	form.Set("From", sms.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", sms.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create Twilio request: %w", err)
	}

	req.SetBasicAuth(sms.AccountSID, sms.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Twilio API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	return nil
}

// FormatPhoneNumber normalizes a phone number to E.164, assuming US
// numbers when no country code is present.
func FormatPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return "+" + digitsOnly(phone)
	}

	digits := digitsOnly(phone)
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return "+" + digits
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
