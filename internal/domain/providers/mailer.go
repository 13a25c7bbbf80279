package providers

import (
	"context"
)

// EmailMessage is a plain-text email
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Mailer delivers email
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
