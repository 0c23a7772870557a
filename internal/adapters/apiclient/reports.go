package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"eventdesk/internal/domain/report"
)

// Reports covers moderation and student report endpoints.
type Reports struct {
	c *Client
}

type reportEnvelope struct {
	Report report.Report `json:"report"`
}

type reportsEnvelope struct {
	Reports []report.Report `json:"reports"`
}

var decideErrors = statusErrors{
	http.StatusNotFound: report.ErrNotFound,
	http.StatusConflict: report.ErrNotPending,
}

// List returns GET /api/reports.
func (r *Reports) List(ctx context.Context) ([]report.Report, error) {
	var out reportsEnvelope
	if err := r.c.do(ctx, http.MethodGet, "/api/reports", nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// ListByStudent returns GET /api/student/reports/history?studentId=.
func (r *Reports) ListByStudent(ctx context.Context, studentID string) ([]report.Report, error) {
	var out reportsEnvelope
	q := url.Values{"studentId": {studentID}}
	if err := r.c.do(ctx, http.MethodGet, "/api/student/reports/history", q, nil, &out, nil); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// Decide posts POST /api/reports/{id}/accept or /reject. The backend stamps the decision time.
func (r *Reports) Decide(ctx context.Context, id, status string, _ time.Time) (report.Report, error) {
	var action string
	switch status {
	case report.StatusResolved:
		action = "accept"
	case report.StatusRejected:
		action = "reject"
	default:
		return report.Report{}, fmt.Errorf("decide report %s: %w", id, report.ErrInvalidStatus)
	}
	var out reportEnvelope
	path := "/api/reports/" + url.PathEscape(id) + "/" + action
	if err := r.c.do(ctx, http.MethodPost, path, nil, nil, &out, decideErrors); err != nil {
		return report.Report{}, err
	}
	return out.Report, nil
}

// Submit posts POST /api/student/reports. Attachments travel as references only.
func (r *Reports) Submit(ctx context.Context, value report.Report) (report.Report, error) {
	var out reportEnvelope
	if err := r.c.do(ctx, http.MethodPost, "/api/student/reports", nil, value, &out, nil); err != nil {
		return report.Report{}, err
	}
	return out.Report, nil
}
