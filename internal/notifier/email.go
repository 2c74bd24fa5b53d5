package notifier

import (
	"context"
	"fmt"

	"github.com/bugboard/bugboard/internal/setup/config"
	"github.com/wneessen/go-mail"
)

// EmailSender delivers notifications over SMTP.
type EmailSender struct {
	client *mail.Client
	from   string
}

// NewEmailSender creates an SMTP sender from the email configuration.
func NewEmailSender(cfg *config.Email) (*EmailSender, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &EmailSender{
		client: client,
		from:   cfg.From,
	}, nil
}

// Send delivers a single plain-text message.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
