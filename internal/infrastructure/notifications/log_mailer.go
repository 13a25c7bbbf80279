package notifications

import (
	"context"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

// LogMailer writes emails to the log instead of sending them. Used when no
// SMTP relay is configured.
type LogMailer struct{}

// NewLogMailer creates a log-only mailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs msg
func (LogMailer) Send(ctx context.Context, msg providers.EmailMessage) error {
	observability.LoggerFromContext(ctx).Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email not sent: no SMTP relay configured")
	return nil
}

// NewMailer picks the SMTP mailer when a relay host is set
func NewMailer(cfg config.SMTPConfig) (providers.Mailer, error) {
	if cfg.Host == "" {
		return NewLogMailer(), nil
	}
	return NewSMTPMailer(cfg)
}
