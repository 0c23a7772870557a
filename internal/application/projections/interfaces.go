package projections

import (
	"context"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

// EventStore interface for event queries.
type EventStore interface {
	GetCurrent(ctx context.Context) (event.Event, error)
	ListUpcoming(ctx context.Context) ([]event.Event, error)
	ListPast(ctx context.Context) ([]event.Event, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	ListByEvent(ctx context.Context, eventID string) ([]attendance.Record, error)
	ListByStudent(ctx context.Context, studentID string) ([]attendance.Record, error)
}

// ReportStore interface for report queries.
type ReportStore interface {
	List(ctx context.Context) ([]report.Report, error)
	ListByStudent(ctx context.Context, studentID string) ([]report.Report, error)
}

// StudentStore interface for student lookups.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
}
