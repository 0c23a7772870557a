package report_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"eventdesk/internal/domain/report"
)

func pendingReport() report.Report {
	return report.Report{
		ID:          "1",
		StudentID:   "2022M0000",
		StudentName: "Dela Cruz, Juan Felipe J.",
		EventName:   "University Hinampang [D1-SI-AM]",
		Message:     "I was present but my card did not scan.",
		Status:      report.StatusPending,
		SubmittedAt: time.Date(2025, 10, 1, 22, 59, 0, 0, time.UTC),
	}
}

// TestReport_Validate tests validation of Report.
func TestReport_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *report.Report)
		wantErr error
	}{
		{name: "valid", mutate: func(r *report.Report) {}},
		{name: "missing student", mutate: func(r *report.Report) { r.StudentID = "" }, wantErr: report.ErrEmptyStudent},
		{name: "blank event", mutate: func(r *report.Report) { r.EventName = "   " }, wantErr: report.ErrEmptyEvent},
		{name: "no message at all", mutate: func(r *report.Report) { r.Message = "" }, wantErr: report.ErrEmptyMessage},
		{name: "full message only", mutate: func(r *report.Report) { r.Message = ""; r.FullMessage = "Long form." }},
		{name: "unknown status", mutate: func(r *report.Report) { r.Status = "archived" }, wantErr: report.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pendingReport()
			tt.mutate(&r)
			err := r.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Report.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestReport_Decide tests the pending -> resolved/rejected transitions.
func TestReport_Decide(t *testing.T) {
	at := time.Date(2025, 10, 2, 9, 0, 0, 0, time.UTC)

	t.Run("accept pending", func(t *testing.T) {
		r := pendingReport()
		if err := r.Accept(at); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if r.Status != report.StatusResolved || !r.DecidedAt.Equal(at) {
			t.Errorf("after Accept() status=%q decidedAt=%v", r.Status, r.DecidedAt)
		}
	})

	t.Run("reject pending", func(t *testing.T) {
		r := pendingReport()
		if err := r.Reject(at); err != nil {
			t.Fatalf("Reject() error = %v", err)
		}
		if r.Status != report.StatusRejected {
			t.Errorf("after Reject() status=%q", r.Status)
		}
	})

	t.Run("cannot decide twice", func(t *testing.T) {
		r := pendingReport()
		_ = r.Accept(at)
		if err := r.Reject(at); !errors.Is(err, report.ErrNotPending) {
			t.Errorf("second decision error = %v, want ErrNotPending", err)
		}
		if r.Status != report.StatusResolved {
			t.Errorf("status changed to %q", r.Status)
		}
	})
}

// TestReport_AddAttachment tests attachment acceptance rules.
func TestReport_AddAttachment(t *testing.T) {
	tests := []struct {
		name    string
		att     report.Attachment
		wantErr error
	}{
		{name: "png image", att: report.Attachment{Name: "proof.png", ContentType: "image/png", Size: 1024}},
		{name: "pdf by type", att: report.Attachment{Name: "cert", ContentType: "application/pdf", Size: 2048}},
		{name: "pdf by extension", att: report.Attachment{Name: "CERT.PDF", ContentType: "application/octet-stream", Size: 2048}},
		{name: "word document", att: report.Attachment{Name: "note.docx", ContentType: "application/msword", Size: 10}, wantErr: report.ErrUnsupportedFileType},
		{name: "too large", att: report.Attachment{Name: "big.jpg", ContentType: "image/jpeg", Size: report.MaxAttachmentSize + 1}, wantErr: report.ErrAttachmentTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pendingReport()
			err := r.AddAttachment(tt.att)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddAttachment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("count bound", func(t *testing.T) {
		r := pendingReport()
		for i := 0; i < report.MaxAttachments; i++ {
			if err := r.AddAttachment(report.Attachment{Name: "p.png", ContentType: "image/png"}); err != nil {
				t.Fatalf("attachment %d: %v", i, err)
			}
		}
		if err := r.AddAttachment(report.Attachment{Name: "p.png", ContentType: "image/png"}); !errors.Is(err, report.ErrTooManyAttachments) {
			t.Errorf("extra attachment error = %v, want ErrTooManyAttachments", err)
		}
	})
}

// TestReport_Preview tests preview selection and truncation.
func TestReport_Preview(t *testing.T) {
	r := pendingReport()
	if got := r.Preview(); got != r.Message {
		t.Errorf("Preview() = %q, want short message", got)
	}

	r.Message = ""
	r.FullMessage = strings.Repeat("word ", 100)
	got := r.Preview()
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview() = %q, want truncated", got)
	}
	if len([]rune(got)) > report.PreviewLength+3 {
		t.Errorf("Preview() length = %d", len([]rune(got)))
	}
	if r.Body() != r.FullMessage {
		t.Error("Body() should prefer the full message")
	}
}
