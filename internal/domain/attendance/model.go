package attendance

import (
	"errors"
	"time"
)

// Status constants
const (
	StatusOnTime  = "on-time"
	StatusLate    = "late"
	StatusExcused = "excused"
)

// Source constants
const (
	SourceRFID   = "rfid"
	SourceManual = "manual"
	SourceSelf   = "self"
)

// DefaultSession labels a record when the backend does not say which session it belongs to.
const DefaultSession = "[AM, Sign In]"

// DefaultGrace is how long after an event starts a check-in still counts as on time.
const DefaultGrace = 15 * time.Minute

// Domain errors
var (
	ErrUnknownIdentifier = errors.New("no student is registered for this card or ID")
	ErrUnknownEventCode  = errors.New("no event matches this code")
	ErrAlreadyRecorded   = errors.New("attendance already recorded for this event")
)

// Record holds state for the concept.
// A record belongs to exactly one event.
type Record struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	EventName  string    `json:"event"`
	StudentID  string    `json:"studentId"`
	Name       string    `json:"name"`
	Course     string    `json:"course"`
	Year       int       `json:"year"`
	Section    string    `json:"section"`
	Session    string    `json:"type"`
	Status     string    `json:"status"`
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: StudentID and EventID must not be empty, RecordedAt must be set
func (r *Record) Validate() error {
	if r.StudentID == "" {
		return errors.New("attendance must be associated with a student")
	}
	if r.EventID == "" {
		return errors.New("attendance must be associated with an event")
	}
	if r.RecordedAt.IsZero() {
		return errors.New("recorded time must be set")
	}
	switch r.Status {
	case StatusOnTime, StatusLate, StatusExcused:
	default:
		return errors.New("invalid attendance status")
	}
	switch r.Source {
	case SourceRFID, SourceManual, SourceSelf:
	default:
		return errors.New("invalid attendance source")
	}
	return nil
}

// Timestamp returns the clock time of the record, e.g. "15:00".
func (r Record) Timestamp() string {
	return r.RecordedAt.Format("15:04")
}

// Date returns the long date of the record, e.g. "January 23, 2026".
func (r Record) Date() string {
	return r.RecordedAt.Format("January 2, 2006")
}

// StatusFor classifies a check-in against the event start.
// POST: on-time if checkIn is no later than startsAt+grace, late otherwise
func StatusFor(checkIn, startsAt time.Time, grace time.Duration) string {
	if checkIn.After(startsAt.Add(grace)) {
		return StatusLate
	}
	return StatusOnTime
}

// Summary aggregates a student's attendance history.
type Summary struct {
	TotalEvents int     `json:"totalEvents"`
	OnTime      int     `json:"onTimeAttendance"`
	Late        int     `json:"lateAttendance"`
	Excused     int     `json:"excusedAttendance"`
	OnTimeRate  float64 `json:"onTimeAttendanceRate"`
	LateRate    float64 `json:"lateAttendanceRate"`
}

// Summarize counts records by status.
// POST: rates are percentages of TotalEvents, 0 when there are no records
func Summarize(records []Record) Summary {
	s := Summary{TotalEvents: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusOnTime:
			s.OnTime++
		case StatusLate:
			s.Late++
		case StatusExcused:
			s.Excused++
		}
	}
	if s.TotalEvents > 0 {
		s.OnTimeRate = float64(s.OnTime) / float64(s.TotalEvents) * 100
		s.LateRate = float64(s.Late) / float64(s.TotalEvents) * 100
	}
	return s
}
