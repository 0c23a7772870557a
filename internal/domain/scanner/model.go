package scanner

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrAlreadyScanning     = errors.New("scanner is already running")
	ErrNotScanning         = errors.New("scanner is not running")
	ErrManualEntryDisabled = errors.New("manual entry is disabled while scanning")
)

// Session is the check-in station state for one attendance screen.
// While a device session is running the manual identifier field is disabled.
type Session struct {
	Scanning  bool
	StartedAt time.Time
	StoppedAt time.Time
}

// Start begins a device scanning session.
// PRE: not scanning
// POST: Scanning is true, StartedAt is at
func (s *Session) Start(at time.Time) error {
	if s.Scanning {
		return ErrAlreadyScanning
	}
	s.Scanning = true
	s.StartedAt = at
	return nil
}

// Stop ends the device scanning session.
// PRE: scanning
// POST: Scanning is false, StoppedAt is at
func (s *Session) Stop(at time.Time) error {
	if !s.Scanning {
		return ErrNotScanning
	}
	s.Scanning = false
	s.StoppedAt = at
	return nil
}

// ManualEntryDisabled reports whether the manual field should be disabled.
func (s *Session) ManualEntryDisabled() bool {
	return s.Scanning
}

// AcceptManual normalizes a manually typed identifier.
// A blank identifier is not an error: ok is false and nothing should be recorded.
func (s *Session) AcceptManual(identifier string) (id string, ok bool, err error) {
	if s.Scanning {
		return "", false, ErrManualEntryDisabled
	}
	id = strings.TrimSpace(identifier)
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}
