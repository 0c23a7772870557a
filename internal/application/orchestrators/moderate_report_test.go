package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	emailAdapter "eventdesk/internal/adapters/email"
	"eventdesk/internal/domain/report"
)

func pending(id string) report.Report {
	return report.Report{ID: id, StudentID: "2022M0000", EventName: "University Hinampang [D1-SI-AM]", Message: "m", Status: report.StatusPending}
}

// TestExecuteModerateReport tests accept/reject transitions and notices.
func TestExecuteModerateReport(t *testing.T) {
	tests := []struct {
		name       string
		decision   string
		wantStatus string
		wantErr    error
	}{
		{name: "accept", decision: DecisionAccept, wantStatus: report.StatusResolved},
		{name: "reject", decision: DecisionReject, wantStatus: report.StatusRejected},
		{name: "unknown decision", decision: "archive", wantErr: ErrUnknownDecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := newMockReports(pending("1"))
			mailer := emailAdapter.NewNoopSender()
			r, err := ExecuteModerateReport(context.Background(), ModerateReportInput{ReportID: "1", Decision: tt.decision},
				ModerateReportDeps{Reports: reports, Students: newMockStudents(), Mailer: mailer, Now: fixedNow})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(mailer.Sent()) != 0 {
					t.Error("no notice expected on error")
				}
				return
			}
			if r.Status != tt.wantStatus || reports.reports["1"].Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			sent := mailer.Sent()
			if len(sent) != 1 {
				t.Fatalf("expected 1 notice, got %d", len(sent))
			}
			if sent[0].To[0] != "juan@example.edu" || !strings.Contains(sent[0].Subject, tt.wantStatus) {
				t.Errorf("notice = %+v", sent[0])
			}
		})
	}
}

// TestExecuteModerateReport_AlreadyDecided tests that decisions are final.
func TestExecuteModerateReport_AlreadyDecided(t *testing.T) {
	r := pending("prev_1")
	r.Status = report.StatusResolved
	reports := newMockReports(r)

	_, err := ExecuteModerateReport(context.Background(), ModerateReportInput{ReportID: "prev_1", Decision: DecisionReject},
		ModerateReportDeps{Reports: reports, Now: fixedNow})
	if !errors.Is(err, report.ErrNotPending) {
		t.Fatalf("error = %v, want ErrNotPending", err)
	}
	if reports.reports["prev_1"].Status != report.StatusResolved {
		t.Error("status must not change")
	}
	if AlertFor(err) != "This report has already been decided." {
		t.Errorf("AlertFor() = %q", AlertFor(err))
	}
}

// TestExecuteModerateReport_MailFailure tests that a failed notice does not fail the decision.
func TestExecuteModerateReport_MailFailure(t *testing.T) {
	reports := newMockReports(pending("2"))
	mailer := &failingMailer{}

	r, err := ExecuteModerateReport(context.Background(), ModerateReportInput{ReportID: "2", Decision: DecisionAccept},
		ModerateReportDeps{Reports: reports, Students: newMockStudents(), Mailer: mailer, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != report.StatusResolved || mailer.calls != 1 {
		t.Errorf("status=%q calls=%d", r.Status, mailer.calls)
	}
}
