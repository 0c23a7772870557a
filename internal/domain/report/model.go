package report

import (
	"errors"
	"path"
	"strings"
	"time"
)

// Report statuses
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Attachment limits for student submissions.
const (
	MaxAttachments    = 5
	MaxAttachmentSize = 10 << 20
)

// PreviewLength bounds the preview cut from a full message when no short message exists.
const PreviewLength = 160

// Domain errors
var (
	ErrNotFound            = errors.New("report not found")
	ErrNotPending          = errors.New("report has already been decided")
	ErrEmptyEvent          = errors.New("report must name an event")
	ErrEmptyMessage        = errors.New("report message cannot be empty")
	ErrEmptyStudent        = errors.New("report must be associated with a student")
	ErrInvalidStatus       = errors.New("report status must be one of: pending, resolved, rejected")
	ErrTooManyAttachments  = errors.New("too many attachments")
	ErrAttachmentTooLarge  = errors.New("attachment exceeds the size limit")
	ErrUnsupportedFileType = errors.New("attachments must be images or PDF documents")
)

// Attachment is a reference to an uploaded file. File bytes are not held here.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
}

// IsImage reports whether the attachment can be previewed inline.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// Report is a student's attendance discrepancy report.
// FullMessage is optional Markdown; Message is the short form shown in lists.
type Report struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"studentId"`
	StudentName string       `json:"name"`
	Course      string       `json:"course"`
	Year        string       `json:"year"`
	Section     string       `json:"section"`
	EventID     string       `json:"eventId,omitempty"`
	EventName   string       `json:"event"`
	Message     string       `json:"message"`
	FullMessage string       `json:"fullMessage,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Status      string       `json:"status"`
	SubmittedAt time.Time    `json:"submittedAt"`
	DecidedAt   time.Time    `json:"decidedAt,omitzero"`
}

// Validate checks if the Report has valid data.
// PRE: Report struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Report) Validate() error {
	if r.StudentID == "" {
		return ErrEmptyStudent
	}
	if strings.TrimSpace(r.EventName) == "" {
		return ErrEmptyEvent
	}
	if strings.TrimSpace(r.Message) == "" && strings.TrimSpace(r.FullMessage) == "" {
		return ErrEmptyMessage
	}
	switch r.Status {
	case StatusPending, StatusResolved, StatusRejected:
	default:
		return ErrInvalidStatus
	}
	if len(r.Attachments) > MaxAttachments {
		return ErrTooManyAttachments
	}
	return nil
}

// IsPending reports whether the report still awaits a decision.
func (r *Report) IsPending() bool {
	return r.Status == StatusPending
}

// Accept resolves a pending report.
// PRE: report is pending
// POST: Status is resolved and DecidedAt is at
func (r *Report) Accept(at time.Time) error {
	return r.decide(StatusResolved, at)
}

// Reject rejects a pending report.
// PRE: report is pending
// POST: Status is rejected and DecidedAt is at
func (r *Report) Reject(at time.Time) error {
	return r.decide(StatusRejected, at)
}

func (r *Report) decide(status string, at time.Time) error {
	if !r.IsPending() {
		return ErrNotPending
	}
	r.Status = status
	r.DecidedAt = at
	return nil
}

// AddAttachment appends a file reference.
// PRE: the file is an image or PDF no larger than MaxAttachmentSize
// INVARIANT: at most MaxAttachments references are held
func (r *Report) AddAttachment(a Attachment) error {
	if len(r.Attachments) >= MaxAttachments {
		return ErrTooManyAttachments
	}
	if a.Size > MaxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	if !AllowedFile(a.Name, a.ContentType) {
		return ErrUnsupportedFileType
	}
	r.Attachments = append(r.Attachments, a)
	return nil
}

// AllowedFile mirrors the upload picker's accept list: any image, or a .pdf file.
func AllowedFile(name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	if contentType == "application/pdf" {
		return true
	}
	return strings.EqualFold(path.Ext(name), ".pdf")
}

// Preview returns the short message, or the start of the full message when the
// short form is empty.
func (r *Report) Preview() string {
	if m := strings.TrimSpace(r.Message); m != "" {
		return m
	}
	full := strings.Join(strings.Fields(r.FullMessage), " ")
	runes := []rune(full)
	if len(runes) <= PreviewLength {
		return full
	}
	return strings.TrimSpace(string(runes[:PreviewLength])) + "..."
}

// Body returns the message to show when a report is expanded.
func (r *Report) Body() string {
	if strings.TrimSpace(r.FullMessage) != "" {
		return r.FullMessage
	}
	return r.Message
}
