package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/student"
)

// Attendance covers scanning, check-in and attendance listings.
type Attendance struct {
	c *Client
}

type recordEnvelope struct {
	Record attendance.Record `json:"record"`
}

type recordsEnvelope struct {
	Records []attendance.Record `json:"records"`
}

// ListByEvent returns GET /api/events/{id}/attendance.
func (a *Attendance) ListByEvent(ctx context.Context, eventID string) ([]attendance.Record, error) {
	var out recordsEnvelope
	path := "/api/events/" + url.PathEscape(eventID) + "/attendance"
	if err := a.c.do(ctx, http.MethodGet, path, nil, nil, &out, statusErrors{http.StatusNotFound: event.ErrNotFound}); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// ListByStudent returns GET /api/student/attendance?studentId=.
func (a *Attendance) ListByStudent(ctx context.Context, studentID string) ([]attendance.Record, error) {
	var out recordsEnvelope
	q := url.Values{"studentId": {studentID}}
	if err := a.c.do(ctx, http.MethodGet, "/api/student/attendance", q, nil, &out, statusErrors{http.StatusNotFound: student.ErrNotFound}); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// RecordScan posts a station read to POST /api/attendance/scan.
// The backend decides the source; source is only logged by the caller.
func (a *Attendance) RecordScan(ctx context.Context, eventID, identifier, source string) (attendance.Record, error) {
	body := struct {
		RFID    string `json:"rfid"`
		EventID string `json:"eventId"`
		Source  string `json:"source,omitempty"`
	}{RFID: identifier, EventID: eventID, Source: source}
	var out recordEnvelope
	err := a.c.do(ctx, http.MethodPost, "/api/attendance/scan", nil, body, &out, statusErrors{
		http.StatusNotFound: attendance.ErrUnknownIdentifier,
		http.StatusConflict: attendance.ErrAlreadyRecorded,
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return out.Record, nil
}

// CheckIn posts POST /api/student/check-in. The backend stamps the time; at is not sent.
func (a *Attendance) CheckIn(ctx context.Context, studentID, eventCode string, _ time.Time) (attendance.Record, error) {
	body := struct {
		StudentID string `json:"studentId"`
		EventCode string `json:"eventCode"`
	}{StudentID: studentID, EventCode: eventCode}
	var out recordEnvelope
	err := a.c.do(ctx, http.MethodPost, "/api/student/check-in", nil, body, &out, statusErrors{
		http.StatusNotFound: attendance.ErrUnknownEventCode,
		http.StatusConflict: attendance.ErrAlreadyRecorded,
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return out.Record, nil
}
