package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outbound email.
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
	ReplyTo   string
}

// Mailer delivers a message. Implementations are fire-and-forget from the
// order lifecycle's perspective; callers log failures and move on.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailerFunc adapts a function to the Mailer interface.
type MailerFunc func(ctx context.Context, msg Message) error

// Send implements Mailer.
func (f MailerFunc) Send(ctx context.Context, msg Message) error {
	if f == nil {
		return errors.New("notifications: mailer not configured")
	}
	return f(ctx, msg)
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client      *sendgrid.Client
	fromName    string
	fromAddress string
}

// SendGridMailerConfig configures the SendGridMailer.
type SendGridMailerConfig struct {
	APIKey      string
	FromName    string
	FromAddress string
}

// NewSendGridMailer constructs a SendGrid-backed Mailer.
func NewSendGridMailer(cfg SendGridMailerConfig) (*SendGridMailer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("notifications: sendgrid api key is required")
	}
	if strings.TrimSpace(cfg.FromAddress) == "" {
		return nil, errors.New("notifications: from address is required")
	}
	return &SendGridMailer{
		client:      sendgrid.NewSendClient(cfg.APIKey),
		fromName:    strings.TrimSpace(cfg.FromName),
		fromAddress: strings.TrimSpace(cfg.FromAddress),
	}, nil
}

// Send delivers the message through SendGrid.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if m == nil || m.client == nil {
		return errors.New("notifications: mailer is nil")
	}
	if strings.TrimSpace(msg.ToAddress) == "" {
		return errors.New("notifications: recipient address is required")
	}

	from := mail.NewEmail(m.fromName, m.fromAddress)
	to := mail.NewEmail(msg.ToName, msg.ToAddress)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.TextBody, msg.HTMLBody)
	if replyTo := strings.TrimSpace(msg.ReplyTo); replyTo != "" {
		email.SetReplyTo(mail.NewEmail("", replyTo))
	}

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("notifications: sendgrid send: %w", err)
	}
	if resp != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("notifications: sendgrid responded %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}
