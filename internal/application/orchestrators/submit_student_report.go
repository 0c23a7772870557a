package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eventdesk/internal/application/placeholder"
	"eventdesk/internal/domain/form"
	"eventdesk/internal/domain/report"
)

// MsgReportSubmitted is the alert shown after a student files a report.
const MsgReportSubmitted = "Report submitted successfully!"

// StudentReportForm is what the student types into the report form.
type StudentReportForm struct {
	EventTitle  string              `form:"eventTitle" label:"Event title" validate:"notblank"`
	Description string              `form:"description" label:"Description" validate:"notblank"`
	Attachments []report.Attachment `form:"-"`
}

// Reset clears the form after a successful submission.
func (f *StudentReportForm) Reset() {
	*f = StudentReportForm{}
}

// SubmitStudentReportInput carries input for the student report orchestrator.
type SubmitStudentReportInput struct {
	StudentID string
	Form      *StudentReportForm
	State     *form.State
}

// SubmitStudentReportDeps holds dependencies for SubmitStudentReport.
type SubmitStudentReportDeps struct {
	Reports    ReportSubmitter
	Students   StudentDirectory
	GenerateID func() string
	Now        func() time.Time
	Delay      time.Duration
}

// ExecuteSubmitStudentReport files a pending discrepancy report for the student.
// PRE: StudentID identifies a known student; Form and State are non-nil
// POST: on validation failure returns *ValidationError and nothing is submitted
// POST: on success the report is pending and Form is reset
func ExecuteSubmitStudentReport(ctx context.Context, input SubmitStudentReportInput, deps SubmitStudentReportDeps) (report.Report, error) {
	errs := form.Check(input.Form)

	r := report.Report{
		ID:          deps.GenerateID(),
		StudentID:   input.StudentID,
		EventName:   strings.TrimSpace(input.Form.EventTitle),
		FullMessage: strings.TrimSpace(input.Form.Description),
		Status:      report.StatusPending,
		SubmittedAt: deps.Now(),
	}
	r.Message = r.Preview()
	for _, a := range input.Form.Attachments {
		if err := r.AddAttachment(a); err != nil {
			errs.Add("attachments", attachmentMessage(err))
			break
		}
	}
	if errs.Any() {
		return report.Report{}, invalid(errs)
	}

	s, err := deps.Students.GetByID(ctx, input.StudentID)
	if err != nil {
		return report.Report{}, err
	}
	r.StudentName = s.Name
	r.Course = s.Course
	r.Year = s.YearSection()
	r.Section = s.Section

	if err := input.State.Begin(); err != nil {
		return report.Report{}, err
	}

	var saved report.Report
	callCtx := context.WithoutCancel(ctx)
	task := placeholder.Start(deps.Delay, func() error {
		var err error
		saved, err = deps.Reports.Submit(callCtx, r)
		return err
	}, func(err error) {
		if err != nil {
			slog.Error("report_event", "event", "report_submit_failed", "student_id", input.StudentID, "error", err)
			input.State.Finish(AlertFor(err), err)
			return
		}
		input.Form.Reset()
		input.State.Finish(MsgReportSubmitted, nil)
	})
	if err := task.Wait(); err != nil {
		return report.Report{}, err
	}

	slog.Info("report_event", "event", "report_submitted", "report_id", saved.ID, "student_id", saved.StudentID, "attachments", len(saved.Attachments))
	return saved, nil
}

func attachmentMessage(err error) string {
	switch {
	case errors.Is(err, report.ErrTooManyAttachments):
		return "You can attach at most 5 files"
	case errors.Is(err, report.ErrAttachmentTooLarge):
		return "Each file must be 10 MB or smaller"
	default:
		return "Only images and PDF files can be attached"
	}
}
