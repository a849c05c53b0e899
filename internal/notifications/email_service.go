package notifications

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"lagoona/internal/shared/config"
	"lagoona/pkg/logger"
)

// EmailSender delivers a single notification
type EmailSender interface {
	Send(notification *EmailNotification) error
}

// SMTPEmailService sends mail over SMTP with STARTTLS
type SMTPEmailService struct {
	cfg config.EmailConfig
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{cfg: cfg}
}

func (s *SMTPEmailService) Send(notification *EmailNotification) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(notification.Recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.FromName, s.cfg.FromEmail, notification.Recipient, notification.Subject, notification.Body,
	)
	if _, err := writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message body: %w", err)
	}

	return client.Quit()
}

// MockEmailService logs instead of sending, for local development
type MockEmailService struct {
	log *logger.Logger
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{log: logger.GetDefault()}
}

func (m *MockEmailService) Send(notification *EmailNotification) error {
	m.log.Info("mock email sent",
		"type", notification.Type,
		"recipient", notification.Recipient,
		"subject", notification.Subject,
	)
	return nil
}
