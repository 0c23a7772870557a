package projections

import (
	"context"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/chart"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

// mockEventStore implements EventStore for testing.
type mockEventStore struct {
	current  *event.Event
	upcoming []event.Event
	past     []event.Event
}

// GetCurrent implements EventStore.
// POST: returns event.ErrNoCurrent when current is nil
func (m *mockEventStore) GetCurrent(_ context.Context) (event.Event, error) {
	if m.current == nil {
		return event.Event{}, event.ErrNoCurrent
	}
	return *m.current, nil
}

// ListUpcoming implements EventStore.
func (m *mockEventStore) ListUpcoming(_ context.Context) ([]event.Event, error) {
	return m.upcoming, nil
}

// ListPast implements EventStore.
func (m *mockEventStore) ListPast(_ context.Context) ([]event.Event, error) {
	return m.past, nil
}

// mockAttendanceStore implements AttendanceStore for testing.
type mockAttendanceStore struct {
	records []attendance.Record
}

// ListByEvent implements AttendanceStore.
// POST: returns records whose EventID matches, in insertion order
func (m *mockAttendanceStore) ListByEvent(_ context.Context, eventID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListByStudent implements AttendanceStore.
// POST: returns records whose StudentID matches, in insertion order
func (m *mockAttendanceStore) ListByStudent(_ context.Context, studentID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range m.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

// mockReportStore implements ReportStore for testing.
type mockReportStore struct {
	reports []report.Report
}

// List implements ReportStore.
func (m *mockReportStore) List(_ context.Context) ([]report.Report, error) {
	return m.reports, nil
}

// ListByStudent implements ReportStore.
func (m *mockReportStore) ListByStudent(_ context.Context, studentID string) ([]report.Report, error) {
	var out []report.Report
	for _, r := range m.reports {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

// mockStudentStore implements StudentStore for testing.
type mockStudentStore struct {
	students map[string]student.Student
}

// GetByID implements StudentStore.
// POST: returns student.ErrNotFound for unknown IDs
func (m *mockStudentStore) GetByID(_ context.Context, id string) (student.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func pagirimaw(id string) event.Event {
	return event.Event{
		ID: id, Name: "University Pagirimaw", Phase: event.PhasePast,
		Stats: event.Stats{TotalEligible: 1000, Attended: 800, RatePercent: 80},
		Courses: []chart.Entry{
			{Category: "CS", Value: 30, Color: "#EF4444"},
			{Category: "IT", Value: 25, Color: "#06B6D4"},
			{Category: "IS", Value: 20, Color: "#A855F7"},
			{Category: "EMC", Value: 15, Color: "#22C55E"},
			{Category: "BLIS", Value: 10, Color: "#F97316"},
		},
		YearCourses: []chart.Group{{Label: "1st", A: 34, B: 21}},
	}
}
