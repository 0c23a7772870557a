package orchestrators

import (
	"context"
	"errors"
	"time"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/eventrequest"
	"eventdesk/internal/domain/form"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/scanner"
	"eventdesk/internal/domain/student"
)

// EventRequestSubmitter accepts new event requests.
type EventRequestSubmitter interface {
	Submit(ctx context.Context, r eventrequest.Request) (eventrequest.Request, error)
}

// ScanRecorder records a station scan for an event. identifier is a card tag or student ID.
type ScanRecorder interface {
	RecordScan(ctx context.Context, eventID, identifier, source string) (attendance.Record, error)
}

// CheckInRecorder records a student's own check-in by event code.
type CheckInRecorder interface {
	CheckIn(ctx context.Context, studentID, eventCode string, at time.Time) (attendance.Record, error)
}

// ReportDecider moves a pending report to resolved or rejected.
type ReportDecider interface {
	Decide(ctx context.Context, id, status string, at time.Time) (report.Report, error)
}

// ReportSubmitter files a new discrepancy report.
type ReportSubmitter interface {
	Submit(ctx context.Context, r report.Report) (report.Report, error)
}

// StudentDirectory resolves students by ID.
type StudentDirectory interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
}

// ValidationError carries field errors back to the form that was submitted.
type ValidationError struct {
	Fields form.Errors
}

// Error implements error.
func (e *ValidationError) Error() string {
	return "validation failed"
}

func invalid(fields form.Errors) error {
	return &ValidationError{Fields: fields}
}

// userMessager is implemented by backend errors that carry a message meant for the user.
type userMessager interface {
	UserMessage() string
}

// publicErrors are domain failures whose text is safe to show as the alert.
var publicErrors = map[error]string{
	attendance.ErrUnknownIdentifier: "No student is registered for this card or ID.",
	attendance.ErrUnknownEventCode:  "Failed to check in. Please verify the event code.",
	attendance.ErrAlreadyRecorded:   "Attendance has already been recorded for this event.",
	report.ErrNotPending:            "This report has already been decided.",
	report.ErrNotFound:              "Report not found.",
	student.ErrNotFound:             "Invalid Student ID",
	scanner.ErrManualEntryDisabled:  "Manual entry is disabled while the scanner is active.",
	scanner.ErrAlreadyScanning:      "The scanner is already running.",
	scanner.ErrNotScanning:          "Start the scanner before scanning cards.",
	form.ErrAlreadySubmitting:       "Please wait for the current submission to finish.",
}

// AlertFor turns a failed submission into the alert shown to the user.
// Unrecognised errors get form.GenericFailure so internals never leak.
func AlertFor(err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	for target, msg := range publicErrors {
		if errors.Is(err, target) {
			return msg
		}
	}
	return form.GenericFailure
}
