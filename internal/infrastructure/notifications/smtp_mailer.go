package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/retry"
)

// SMTPMailer sends plain-text email through an SMTP relay
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
	retry    retry.Config
}

// NewSMTPMailer creates a mailer for the configured relay
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
		retry:    retry.DeliveryConfig(),
	}, nil
}

// Send delivers msg, retrying transient relay failures
func (m *SMTPMailer) Send(ctx context.Context, msg providers.EmailMessage) error {
	out, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	logger := observability.LoggerFromContext(ctx)
	cfg := m.retry
	cfg.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Str("to", msg.To).Msg("email delivery failed")
	}

	return retry.Do(ctx, cfg, "SMTP", func(ctx context.Context) error {
		return m.client.DialAndSendWithContext(ctx, out)
	})
}

func (m *SMTPMailer) buildMessage(msg providers.EmailMessage) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("failed to set From address: %w", err)
	}
	if err := out.AddToFormat(msg.ToName, msg.To); err != nil {
		return nil, fmt.Errorf("failed to set To address: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return out, nil
}
