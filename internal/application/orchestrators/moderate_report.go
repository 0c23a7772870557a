package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"time"

	emailAdapter "eventdesk/internal/adapters/email"
	"eventdesk/internal/domain/report"
)

// Report decisions as they appear in routes.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Alerts shown after a decision.
const (
	MsgReportAccepted = "Report accepted successfully"
	MsgReportRejected = "Report rejected successfully"
)

// ErrUnknownDecision is returned for anything other than accept or reject.
var ErrUnknownDecision = errors.New("decision must be accept or reject")

var decisionNotice = template.Must(template.New("notice").Parse(
	`<p>Hi {{.Name}},</p>` +
		`<p>Your attendance report for <strong>{{.Event}}</strong> has been <strong>{{.Status}}</strong>.</p>` +
		`{{if eq .Status "rejected"}}<p>If you believe this is a mistake, please contact the department office.</p>{{end}}`))

// ModerateReportInput carries input for the moderation orchestrator.
type ModerateReportInput struct {
	ReportID string
	Decision string
}

// ModerateReportDeps holds dependencies for ModerateReport.
// Students and Mailer are optional; without them no notice is sent.
type ModerateReportDeps struct {
	Reports     ReportDecider
	Students    StudentDirectory
	Mailer      emailAdapter.Sender
	FromAddress string
	Now         func() time.Time
}

// ExecuteModerateReport accepts or rejects a pending report and notifies the student.
// PRE: ReportID is non-empty; Decision is accept or reject
// POST: report status is resolved or rejected
// INVARIANT: a failed notice never fails the decision
func ExecuteModerateReport(ctx context.Context, input ModerateReportInput, deps ModerateReportDeps) (report.Report, error) {
	if input.ReportID == "" {
		return report.Report{}, report.ErrNotFound
	}
	var status string
	switch input.Decision {
	case DecisionAccept:
		status = report.StatusResolved
	case DecisionReject:
		status = report.StatusRejected
	default:
		return report.Report{}, ErrUnknownDecision
	}

	r, err := deps.Reports.Decide(ctx, input.ReportID, status, deps.Now())
	if err != nil {
		return report.Report{}, err
	}
	slog.Info("report_event", "event", "report_decided", "report_id", r.ID, "status", r.Status, "student_id", r.StudentID)

	if err := sendDecisionNotice(ctx, r, deps); err != nil {
		slog.Error("report_event", "event", "decision_notice_failed", "report_id", r.ID, "error", err)
	}
	return r, nil
}

// DecisionAlert returns the alert shown after a decision.
func DecisionAlert(decision string) string {
	if decision == DecisionReject {
		return MsgReportRejected
	}
	return MsgReportAccepted
}

func sendDecisionNotice(ctx context.Context, r report.Report, deps ModerateReportDeps) error {
	if deps.Mailer == nil || deps.Students == nil {
		return nil
	}
	s, err := deps.Students.GetByID(ctx, r.StudentID)
	if err != nil {
		return err
	}
	if s.Email == "" {
		slog.Info("report_event", "event", "decision_notice_skipped", "report_id", r.ID, "reason", "no email")
		return nil
	}

	var body bytes.Buffer
	if err := decisionNotice.Execute(&body, map[string]string{
		"Name":   s.Name,
		"Event":  r.EventName,
		"Status": r.Status,
	}); err != nil {
		return err
	}

	_, err = deps.Mailer.Send(ctx, emailAdapter.SendRequest{
		To:      []string{s.Email},
		From:    deps.FromAddress,
		Subject: "Your attendance report was " + r.Status,
		HTML:    body.String(),
		Text:    "Hi " + s.Name + ", your attendance report for " + r.EventName + " has been " + r.Status + ".",
		Tags:    map[string]string{"category": "report_decision", "status": r.Status},
	})
	return err
}
