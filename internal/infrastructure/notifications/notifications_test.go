package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
)

func TestNewMailer(t *testing.T) {
	t.Run("falls back to the log mailer without a host", func(t *testing.T) {
		mailer, err := NewMailer(config.SMTPConfig{})
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, mailer)
	})

	t.Run("builds an SMTP mailer when a host is set", func(t *testing.T) {
		mailer, err := NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 2525, Username: "u", Password: "p"})
		require.NoError(t, err)
		assert.IsType(t, &SMTPMailer{}, mailer)
	})
}

func TestSMTPMailer_BuildMessage(t *testing.T) {
	mailer, err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "desk@hotel.test", FromName: "Front Desk"})
	require.NoError(t, err)

	t.Run("addresses the guest with subject and body", func(t *testing.T) {
		msg, err := mailer.buildMessage(providers.EmailMessage{
			To:      "guest@example.com",
			ToName:  "Guest",
			Subject: "Booking Confirmation",
			Body:    "See you soon",
		})
		require.NoError(t, err)

		recipients, err := msg.GetRecipients()
		require.NoError(t, err)
		assert.Equal(t, []string{"guest@example.com"}, recipients)
		assert.Equal(t, []string{"Booking Confirmation"}, msg.GetGenHeader(mail.HeaderSubject))
	})

	t.Run("rejects an invalid recipient", func(t *testing.T) {
		_, err := mailer.buildMessage(providers.EmailMessage{To: "not an address"})
		assert.Error(t, err)
	})
}

func TestLogMailer_Send(t *testing.T) {
	err := NewLogMailer().Send(context.Background(), providers.EmailMessage{To: "guest@example.com", Subject: "Hi"})
	assert.NoError(t, err)
}
