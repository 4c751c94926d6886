package tools

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/ziadkadry99/smartsupport/internal/config"
)

// Mailer is the outbound mail transport behind the confirmation-email tool.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
	// Configured reports whether delivery credentials are present. Missing
	// credentials are a legitimate state, not an error.
	Configured() bool
}

// SMTPMailer delivers mail over authenticated SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates a mailer from the SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Configured() bool {
	return m.cfg.Host != "" && m.cfg.Username != "" && m.cfg.Password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	if err := msg.From(from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// sendConfirmationEmailHandler validates the address, then delivers through
// the mailer. Without configured credentials it reports simulated success so
// a demo install never blocks the conversation.
func sendConfirmationEmailHandler(mailer Mailer) Handler {
	return func(ctx context.Context, args map[string]any) (ToolResult, error) {
		email := stringArg(args, "email")
		subject := stringArg(args, "subject")
		details := stringArg(args, "details")

		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			return Failure("כתובת האימייל אינה תקינה"), nil
		}

		if mailer == nil || !mailer.Configured() {
			log.Printf("tools: smtp not configured, simulating email to %s (subject %q)", email, subject)
			return ToolResult{
				Success: true,
				Message: fmt.Sprintf("אימייל נשלח בהצלחה לכתובת %s", email),
				Data:    map[string]any{"simulated": true},
			}, nil
		}

		if err := mailer.Send(ctx, email, subject, details); err != nil {
			log.Printf("tools: sending email to %s: %v", email, err)
			return Failure("שליחת האימייל נכשלה, נסו שוב מאוחר יותר"), nil
		}

		return ToolResult{
			Success: true,
			Message: fmt.Sprintf("אימייל נשלח בהצלחה לכתובת %s", email),
		}, nil
	}
}
