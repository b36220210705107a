// internal/pkg/email/smtp.go
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// sendSMTPEmail sends email using SMTP (Gmail, Outlook, or self-hosted)
func (s *EmailService) sendSMTPEmail(email *Email) error {
	if s.config.External.Email.SMTPHost == "" || s.config.External.Email.SMTPUsername == "" {
		return fmt.Errorf("SMTP configuration incomplete: missing host or username")
	}

	auth := smtp.PlainAuth("",
		s.config.External.Email.SMTPUsername,
		s.config.External.Email.SMTPPassword,
		s.config.External.Email.SMTPHost)

	headers := make(map[string]string)
	headers["From"] = s.fromAddress()
	headers["To"] = strings.Join(email.To, ", ")
	headers["Subject"] = email.Subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"utf-8\""

	if s.config.External.Email.ReplyTo != "" {
		headers["Reply-To"] = s.config.External.Email.ReplyTo
	}

	var msg bytes.Buffer
	for key, value := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.HTMLContent)

	serverAddr := fmt.Sprintf("%s:%d", s.config.External.Email.SMTPHost, s.config.External.Email.SMTPPort)

	fromEmail := s.config.External.Email.FromEmail
	if s.config.External.Email.SMTPUseTLS {
		return s.sendSMTPWithTLS(serverAddr, auth, fromEmail, email.To, msg.Bytes())
	}
	return smtp.SendMail(serverAddr, auth, fromEmail, email.To, msg.Bytes())
}

// sendSMTPWithTLS sends email using explicit TLS connection
func (s *EmailService) sendSMTPWithTLS(serverAddr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: s.config.External.Email.SMTPHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to create TLS connection: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.External.Email.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send DATA command: %w", err)
	}
	defer writer.Close()

	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("failed to write email content: %w", err)
	}

	return nil
}
