package email

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers decision notices through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	now    func() time.Time
}

// NewResendSender creates a sender that uses from when a request names no sender.
// PRE: apiKey is a Resend API key
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from, now: time.Now}
}

// Send delivers req and returns the provider's message ID.
// POST: blank recipients are dropped; none left returns ErrNoRecipients without calling Resend
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	to, err := recipients(req.To)
	if err != nil {
		return SendResult{}, err
	}
	from := req.From
	if from == "" {
		from = s.from
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: req.Subject,
		Html:    req.HTML,
		Text:    req.Text,
		Tags:    resendTags(req.Tags),
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("resend: %w", err)
	}

	slog.Info("email_event", "event", "notice_sent", "provider", "resend", "message_id", sent.Id, "recipients", len(to), "category", req.Tags["category"])
	return SendResult{MessageID: sent.Id, SentAt: s.now()}, nil
}

// resendTags converts tags in key order so requests are reproducible.
func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]resend.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, resend.Tag{Name: k, Value: tags[k]})
	}
	return out
}
