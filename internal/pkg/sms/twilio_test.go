// internal/pkg/sms/twilio_test.go
package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/spicerack-backend/internal/config"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare ten digits", "4045551234", "+14045551234"},
		{"dashed", "404-555-1234", "+14045551234"},
		{"parentheses and spaces", "(404) 555 1234", "+14045551234"},
		{"leading one", "14045551234", "+14045551234"},
		{"already e164", "+14045551234", "+14045551234"},
		{"e164 with punctuation", "+1 (404) 555-1234", "+14045551234"},
		{"international", "+2348012345678", "+2348012345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPhoneNumber(tt.input))
		})
	}
}

func TestSendSMSUnconfigured(t *testing.T) {
	cfg := &config.Config{}
	client := NewClient(cfg)

	err := client.SendSMS(context.Background(), "+14045551234", "Your order is ready")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
