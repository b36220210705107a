// internal/domain/notification/types.go
package notification

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found for order")
)

// Outcome is the result of one channel of one dispatch
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// DispatchResult reports both channels of a dispatch. The channels are
// independent: one failing never blocks or fails the other.
type DispatchResult struct {
	Email Outcome `json:"email"`
	SMS   Outcome `json:"sms"`
}

// ReminderOutcome is the per-order result of a reminder batch
type ReminderOutcome struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	Email       Outcome `json:"email,omitempty"`
	SMS         Outcome `json:"sms,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// EmailSender delivers one HTML email
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// SMSSender delivers one text message
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// emailContent is a built email payload; nil means no template applies
type emailContent struct {
	Subject string
	HTML    string
}
