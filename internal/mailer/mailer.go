package mailer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupath-ng/edupath-go-api/internal/observability"
)

// Template names understood by the mailer.
const (
	TemplateRegistration   = "registration"
	TemplateStudentApprove = "student-approve"
	TemplateAdminWelcome   = "admin-welcome"
)

// Message describes one outbound email.
type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]string
}

// Result is the structured outcome of a send attempt. Delivery is best
// effort: callers inspect the result but never fail their own operation on it.
type Result struct {
	Success bool
	Message string
}

// Mailer dispatches notification emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) Result
}

// Async wraps a Mailer so that Send returns immediately and the actual
// delivery happens in the background under its own bounded timeout. A slow
// transport can then never hold a request open.
type Async struct {
	inner   Mailer
	timeout time.Duration
	logger  zerolog.Logger
}

// NewAsync constructs the asynchronous dispatcher.
func NewAsync(inner Mailer, timeout time.Duration, logger zerolog.Logger) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{
		inner:   inner,
		timeout: timeout,
		logger:  logger.With().Str("component", "mail_dispatcher").Logger(),
	}
}

// Send queues the message and reports it as queued. Delivery failures are
// logged, never surfaced to the caller.
func (a *Async) Send(_ context.Context, msg Message) Result {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		result := a.inner.Send(ctx, msg)
		if !result.Success {
			observability.EmailDispatches().WithLabelValues(msg.Template, "error").Inc()
			a.logger.Warn().
				Str("template", msg.Template).
				Str("to", maskAddress(msg.To)).
				Str("reason", result.Message).
				Msg("email delivery failed")
			return
		}
		observability.EmailDispatches().WithLabelValues(msg.Template, "success").Inc()
		a.logger.Info().
			Str("template", msg.Template).
			Str("to", maskAddress(msg.To)).
			Msg("email delivered")
	}()

	return Result{Success: true, Message: "queued"}
}
