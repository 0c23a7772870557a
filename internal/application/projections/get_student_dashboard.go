package projections

import (
	"context"
	"sort"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/disclosure"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

// DashboardHistoryLimit caps the history shown on the student landing page.
const DashboardHistoryLimit = 8

// GetStudentDashboardQuery carries input for the student projections.
type GetStudentDashboardQuery struct {
	StudentID string
}

// GetStudentDashboardDeps holds dependencies for the student projections.
type GetStudentDashboardDeps struct {
	StudentStore    StudentStore
	AttendanceStore AttendanceStore
	EventStore      EventStore
}

// StudentDashboardResult carries the output of the student landing page projection.
type StudentDashboardResult struct {
	Student  student.Student
	Summary  attendance.Summary
	History  []attendance.Record
	Upcoming []event.Event
}

// QueryGetStudentDashboard builds the student's summary, recent history and upcoming events.
// PRE: StudentID names a known student
// POST: History holds at most DashboardHistoryLimit records, newest first; Summary covers all records
func QueryGetStudentDashboard(ctx context.Context, query GetStudentDashboardQuery, deps GetStudentDashboardDeps) (StudentDashboardResult, error) {
	s, history, err := studentHistory(ctx, query.StudentID, deps.StudentStore, deps.AttendanceStore)
	if err != nil {
		return StudentDashboardResult{}, err
	}
	upcoming, err := deps.EventStore.ListUpcoming(ctx)
	if err != nil {
		return StudentDashboardResult{}, err
	}
	if upcoming == nil {
		upcoming = []event.Event{}
	}

	result := StudentDashboardResult{
		Student:  s,
		Summary:  attendance.Summarize(history),
		History:  history,
		Upcoming: upcoming,
	}
	if len(result.History) > DashboardHistoryLimit {
		result.History = result.History[:DashboardHistoryLimit]
	}
	return result, nil
}

// GetStudentAttendanceDeps holds dependencies for the student attendance projection.
type GetStudentAttendanceDeps struct {
	StudentStore    StudentStore
	AttendanceStore AttendanceStore
}

// StudentAttendanceResult carries the output of the student attendance projection.
type StudentAttendanceResult struct {
	Student student.Student
	Summary attendance.Summary
	History []attendance.Record
}

// QueryGetStudentAttendance returns the student's full history for the check-in page.
// PRE: StudentID names a known student
// POST: History is newest first and never nil
func QueryGetStudentAttendance(ctx context.Context, query GetStudentDashboardQuery, deps GetStudentAttendanceDeps) (StudentAttendanceResult, error) {
	s, history, err := studentHistory(ctx, query.StudentID, deps.StudentStore, deps.AttendanceStore)
	if err != nil {
		return StudentAttendanceResult{}, err
	}
	return StudentAttendanceResult{Student: s, Summary: attendance.Summarize(history), History: history}, nil
}

func studentHistory(ctx context.Context, studentID string, students StudentStore, records AttendanceStore) (student.Student, []attendance.Record, error) {
	s, err := students.GetByID(ctx, studentID)
	if err != nil {
		return student.Student{}, nil, err
	}
	history, err := records.ListByStudent(ctx, studentID)
	if err != nil {
		return student.Student{}, nil, err
	}
	if history == nil {
		history = []attendance.Record{}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].RecordedAt.After(history[j].RecordedAt)
	})
	return s, history, nil
}

// Student report page sections.
const (
	SectionReportForm = "report-form"
	SectionMyReports  = "previous"
)

// GetStudentReportsQuery carries input for the student reports projection.
type GetStudentReportsQuery struct {
	StudentID  string
	Disclosure disclosure.State
}

// GetStudentReportsDeps holds dependencies for the student reports projection.
type GetStudentReportsDeps struct {
	StudentStore StudentStore
	ReportStore  ReportStore
}

// StudentReportsResult carries the output of the student reports projection.
type StudentReportsResult struct {
	Student     student.Student
	Reports     []report.Report
	FormOpen    bool
	HistoryOpen bool
	Disclosure  disclosure.State
}

// QueryGetStudentReports lists the student's own reports, newest first.
// PRE: StudentID names a known student
func QueryGetStudentReports(ctx context.Context, query GetStudentReportsQuery, deps GetStudentReportsDeps) (StudentReportsResult, error) {
	s, err := deps.StudentStore.GetByID(ctx, query.StudentID)
	if err != nil {
		return StudentReportsResult{}, err
	}
	reports, err := deps.ReportStore.ListByStudent(ctx, query.StudentID)
	if err != nil {
		return StudentReportsResult{}, err
	}
	if reports == nil {
		reports = []report.Report{}
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].SubmittedAt.After(reports[j].SubmittedAt)
	})
	return StudentReportsResult{
		Student:     s,
		Reports:     reports,
		FormOpen:    query.Disclosure.IsSectionOpen(SectionReportForm),
		HistoryOpen: query.Disclosure.IsSectionOpen(SectionMyReports),
		Disclosure:  query.Disclosure,
	}, nil
}
