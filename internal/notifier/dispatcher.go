// Package notifier is the consuming side of the notifications queue: it
// validates inbound event payloads, renders the matching mail template and
// hands the result to the mail sender. Every operation is best-effort —
// failures are logged and dropped, never retried and never surfaced to the
// producing service, whose own work has already committed.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/waseet/event-social/internal/mailer"
	"github.com/waseet/event-social/internal/queue"
)

// MailSender delivers one rendered mail.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

const (
	subjectWelcome     = "Welcome to Event Social App!"
	subjectJoinRequest = "New join request for your event"
	subjectDecision    = "Your event request has been answered"

	sendTimeout = 15 * time.Second
)

// Dispatcher routes decoded queue events to the mail sender.
type Dispatcher struct {
	mail     MailSender
	validate *validator.Validate
	logger   zerolog.Logger
}

func New(mail MailSender, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		mail:     mail,
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle implements queue.Handler. Unknown patterns are logged and
// dropped so the queue keeps draining.
func (d *Dispatcher) Handle(pattern string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	switch pattern {
	case queue.SendWelcomeEmail:
		d.SendWelcomeEmail(ctx, data)
	case queue.SendJoinRequest:
		d.SendJoinRequestNotice(ctx, data)
	case queue.SendJoinRequestResponse:
		d.SendRequestDecision(ctx, data)
	default:
		d.logger.Warn().Str("pattern", pattern).Msg("unknown notification pattern")
	}
}

// SendWelcomeEmail greets a newly registered user.
func (d *Dispatcher) SendWelcomeEmail(ctx context.Context, data []byte) {
	var ev queue.WelcomeEmailEvent
	if !d.decode(data, &ev, queue.SendWelcomeEmail) {
		return
	}
	d.send(ctx, ev.ToEmail, subjectWelcome, mailer.TemplateWelcome, map[string]string{
		"Name": ev.Name,
	})
}

// SendJoinRequestNotice tells an event creator somebody wants to join.
func (d *Dispatcher) SendJoinRequestNotice(ctx context.Context, data []byte) {
	var ev queue.JoinRequestEvent
	if !d.decode(data, &ev, queue.SendJoinRequest) {
		return
	}
	d.send(ctx, ev.Email, subjectJoinRequest, mailer.TemplateEventRequest, map[string]string{
		"Name":          ev.Name,
		"RequesterName": ev.RequesterName,
		"EventTitle":    ev.EventTitle,
	})
}

// SendRequestDecision tells a requester how the owner decided.
func (d *Dispatcher) SendRequestDecision(ctx context.Context, data []byte) {
	var ev queue.RequestDecisionEvent
	if !d.decode(data, &ev, queue.SendJoinRequestResponse) {
		return
	}
	d.send(ctx, ev.Email, subjectDecision, mailer.TemplateEventReply, map[string]string{
		"Name":       ev.Name,
		"EventTitle": ev.EventTitle,
		"Status":     ev.Status,
	})
}

// decode unmarshals and validates a payload against its required-field
// schema. Invalid payloads are logged and dropped.
func (d *Dispatcher) decode(data []byte, into any, pattern string) bool {
	if err := json.Unmarshal(data, into); err != nil {
		d.logger.Error().Err(err).Str("pattern", pattern).Msg("malformed notification payload")
		return false
	}
	if err := d.validate.Struct(into); err != nil {
		d.logger.Error().Err(err).Str("pattern", pattern).Msg("invalid notification payload")
		return false
	}
	return true
}

func (d *Dispatcher) send(ctx context.Context, to, subject, tmpl string, data map[string]string) {
	body, err := mailer.Render(tmpl, data)
	if err != nil {
		d.logger.Error().Err(err).Str("template", tmpl).Msg("render mail failed")
		return
	}
	if err := d.mail.Send(ctx, to, subject, body); err != nil {
		d.logger.Error().Err(err).Str("to", to).Str("template", tmpl).Msg("send mail failed")
		return
	}
}
