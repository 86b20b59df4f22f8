// Package mailer renders notification templates and delivers them through
// the Resend API.
package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Mailer sends templated HTML mail via Resend.
type Mailer struct {
	client *resend.Client
	from   string
	logger zerolog.Logger
}

func New(apiKey, from string, logger zerolog.Logger) *Mailer {
	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send delivers one HTML mail. Errors are returned to the caller; the
// dispatcher decides whether they are fatal (they never are).
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}
	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}
	m.logger.Info().
		Str("email_id", sent.Id).
		Str("to", to).
		Msg("email sent")
	return nil
}
