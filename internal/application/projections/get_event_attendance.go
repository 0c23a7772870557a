package projections

import (
	"context"
	"errors"
	"sort"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
)

// GetEventAttendanceQuery carries input for the attendance table projection.
type GetEventAttendanceQuery struct{}

// GetEventAttendanceDeps holds dependencies for the attendance table projection.
type GetEventAttendanceDeps struct {
	EventStore      EventStore
	AttendanceStore AttendanceStore
}

// EventAttendanceResult carries the output of the attendance table projection.
type EventAttendanceResult struct {
	HasEvent bool
	Event    event.Event
	Records  []attendance.Record
}

// QueryGetEventAttendance lists the ongoing event's records, newest first.
// PRE: none
// POST: Records is never nil; ties keep backend order
func QueryGetEventAttendance(ctx context.Context, _ GetEventAttendanceQuery, deps GetEventAttendanceDeps) (EventAttendanceResult, error) {
	current, err := deps.EventStore.GetCurrent(ctx)
	if errors.Is(err, event.ErrNoCurrent) {
		return EventAttendanceResult{Records: []attendance.Record{}}, nil
	}
	if err != nil {
		return EventAttendanceResult{}, err
	}

	records, err := deps.AttendanceStore.ListByEvent(ctx, current.ID)
	if err != nil {
		return EventAttendanceResult{}, err
	}
	if records == nil {
		records = []attendance.Record{}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})

	return EventAttendanceResult{HasEvent: true, Event: current, Records: records}, nil
}
