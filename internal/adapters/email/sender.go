package email

import (
	"context"
	"errors"
	"time"
)

// ErrNoRecipients is returned when a request has no usable address.
var ErrNoRecipients = errors.New("email has no recipients")

// SendRequest is one outgoing notice.
// Tags are attached as provider metadata (e.g. category=report_decision); keys and
// values must be ASCII letters, digits, underscores or dashes.
type SendRequest struct {
	To      []string
	From    string // the sender's default when empty
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// New returns a Resend-backed sender when apiKey is set, otherwise a NoopSender.
func New(apiKey, from string) Sender {
	if apiKey == "" {
		return NewNoopSender()
	}
	return NewResendSender(apiKey, from)
}

// recipients drops blank addresses.
func recipients(to []string) ([]string, error) {
	out := make([]string, 0, len(to))
	for _, addr := range to {
		if addr != "" {
			out = append(out, addr)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRecipients
	}
	return out, nil
}
