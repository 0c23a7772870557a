package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoopSender logs notices instead of delivering them. Sent requests are kept for inspection.
type NoopSender struct {
	mu   sync.Mutex
	sent []SendRequest
	seq  int
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send records req without delivering it.
// POST: a request with recipients is appended to Sent(); one without returns ErrNoRecipients
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	to, err := recipients(req.To)
	if err != nil {
		return SendResult{}, err
	}
	req.To = to

	s.mu.Lock()
	s.sent = append(s.sent, req)
	s.seq++
	id := fmt.Sprintf("noop-%d", s.seq)
	s.mu.Unlock()

	slog.Info("email_event", "event", "notice_logged", "provider", "noop", "message_id", id, "subject", req.Subject, "category", req.Tags["category"])
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}

// Sent returns a copy of every request passed to Send.
func (s *NoopSender) Sent() []SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SendRequest, len(s.sent))
	copy(out, s.sent)
	return out
}
