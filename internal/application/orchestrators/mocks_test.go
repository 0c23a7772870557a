package orchestrators

import (
	"context"
	"errors"
	"sync"
	"time"

	emailAdapter "eventdesk/internal/adapters/email"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/eventrequest"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

var fixedTime = time.Date(2025, 9, 12, 8, 5, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockRequestStore implements EventRequestSubmitter for testing.
type mockRequestStore struct {
	saved []eventrequest.Request
	err   error
}

// Submit implements EventRequestSubmitter.
// PRE: r has been validated
// POST: r is appended to saved unless err is set
func (m *mockRequestStore) Submit(_ context.Context, r eventrequest.Request) (eventrequest.Request, error) {
	if m.err != nil {
		return eventrequest.Request{}, m.err
	}
	m.saved = append(m.saved, r)
	return r, nil
}

// mockAttendance implements ScanRecorder and CheckInRecorder for testing.
type mockAttendance struct {
	mu      sync.Mutex
	scans   []string
	sources []string
	codes   map[string]string // code -> event name
	err     error
}

// RecordScan implements ScanRecorder.
// PRE: identifier is trimmed and non-empty
// POST: identifier is appended to scans
func (m *mockAttendance) RecordScan(_ context.Context, eventID, identifier, source string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return attendance.Record{}, m.err
	}
	m.scans = append(m.scans, identifier)
	m.sources = append(m.sources, source)
	return attendance.Record{ID: "r1", EventID: eventID, StudentID: identifier, Status: attendance.StatusOnTime, Source: source}, nil
}

// CheckIn implements CheckInRecorder.
// PRE: eventCode is trimmed and non-empty
// POST: returns a record for a known code, attendance.ErrUnknownEventCode otherwise
func (m *mockAttendance) CheckIn(_ context.Context, studentID, eventCode string, at time.Time) (attendance.Record, error) {
	name, ok := m.codes[eventCode]
	if !ok {
		return attendance.Record{}, attendance.ErrUnknownEventCode
	}
	return attendance.Record{ID: "c1", EventID: eventCode, EventName: name, StudentID: studentID, Status: attendance.StatusOnTime, Source: attendance.SourceSelf, RecordedAt: at}, nil
}

// mockReports implements ReportDecider and ReportSubmitter for testing.
type mockReports struct {
	reports map[string]report.Report
}

func newMockReports(rs ...report.Report) *mockReports {
	m := &mockReports{reports: make(map[string]report.Report)}
	for _, r := range rs {
		m.reports[r.ID] = r
	}
	return m
}

// Decide implements ReportDecider.
// PRE: status is resolved or rejected
// POST: a pending report takes status; others return report.ErrNotPending
func (m *mockReports) Decide(_ context.Context, id, status string, at time.Time) (report.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return report.Report{}, report.ErrNotFound
	}
	var err error
	if status == report.StatusResolved {
		err = r.Accept(at)
	} else {
		err = r.Reject(at)
	}
	if err != nil {
		return report.Report{}, err
	}
	m.reports[id] = r
	return r, nil
}

// Submit implements ReportSubmitter.
// PRE: r is valid
// POST: r is stored by ID
func (m *mockReports) Submit(_ context.Context, r report.Report) (report.Report, error) {
	if err := r.Validate(); err != nil {
		return report.Report{}, err
	}
	m.reports[r.ID] = r
	return r, nil
}

// mockStudents implements StudentDirectory for testing.
type mockStudents struct {
	students map[string]student.Student
}

// GetByID implements StudentDirectory.
// PRE: id is non-empty
// POST: returns the student or student.ErrNotFound
func (m *mockStudents) GetByID(_ context.Context, id string) (student.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func juan() student.Student {
	return student.Student{ID: "2022M0000", Name: "Dela Cruz, Juan Felipe J.", Course: "BSCS", Year: 4, Section: "A", Email: "juan@example.edu"}
}

func newMockStudents() *mockStudents {
	j := juan()
	return &mockStudents{students: map[string]student.Student{j.ID: j}}
}

// failingMailer implements email.Sender and always fails.
type failingMailer struct{ calls int }

var errMailDown = errors.New("mail provider unavailable")

// Send implements email.Sender.
// POST: counts the call and returns errMailDown
func (m *failingMailer) Send(_ context.Context, _ emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	m.calls++
	return emailAdapter.SendResult{}, errMailDown
}

// userFacingError mimics a backend error body carrying a message for the user.
type userFacingError struct{ msg string }

func (e *userFacingError) Error() string       { return "backend: " + e.msg }
func (e *userFacingError) UserMessage() string { return e.msg }
