package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"eventdesk/internal/application/placeholder"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/form"
)

// Student check-in messages.
const (
	MsgEventCodeRequired = "Please enter an event code"
	MsgCheckedIn         = "Successfully checked in to "
)

// StudentCheckInInput carries input for the student check-in orchestrator.
type StudentCheckInInput struct {
	StudentID string
	EventCode string
	State     *form.State
}

// StudentCheckInDeps holds dependencies for StudentCheckIn.
type StudentCheckInDeps struct {
	Attendance CheckInRecorder
	Now        func() time.Time
	Delay      time.Duration
}

// ExecuteStudentCheckIn checks the student into the event with the given code.
// PRE: StudentID is non-empty; State is non-nil
// POST: a blank code returns *ValidationError keyed "eventCode"
// POST: on success the new record is returned and the alert names the event
func ExecuteStudentCheckIn(ctx context.Context, input StudentCheckInInput, deps StudentCheckInDeps) (attendance.Record, error) {
	code := strings.TrimSpace(input.EventCode)
	if code == "" {
		return attendance.Record{}, invalid(form.Errors{"eventCode": MsgEventCodeRequired})
	}
	if err := input.State.Begin(); err != nil {
		return attendance.Record{}, err
	}
	slog.Info("checkin_event", "event", "student_check_in", "student_id", input.StudentID, "event_code", code)

	var rec attendance.Record
	callCtx := context.WithoutCancel(ctx)
	task := placeholder.Start(deps.Delay, func() error {
		var err error
		rec, err = deps.Attendance.CheckIn(callCtx, input.StudentID, code, deps.Now())
		return err
	}, func(err error) {
		if err != nil {
			input.State.Finish(AlertFor(err), err)
			return
		}
		input.State.Finish(MsgCheckedIn+rec.EventName+"!", nil)
	})
	if err := task.Wait(); err != nil {
		slog.Warn("checkin_event", "event", "student_check_in_failed", "student_id", input.StudentID, "error", err)
		return attendance.Record{}, err
	}

	slog.Info("checkin_event", "event", "student_checked_in", "student_id", input.StudentID, "event_id", rec.EventID, "status", rec.Status)
	return rec, nil
}
