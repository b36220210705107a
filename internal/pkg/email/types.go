// internal/pkg/email/types.go
package email

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeWelcome           EmailType = "welcome"
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderStatusUpdate EmailType = "order_status_update"
	EmailTypeOrderReminder     EmailType = "order_reminder"
	EmailTypeAccountUpdate     EmailType = "account_update"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	TextContent string    `json:"text_content,omitempty"`
	Type        EmailType `json:"type"`
}
