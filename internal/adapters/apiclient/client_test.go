package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventdesk/internal/adapters/apiclient"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/eventrequest"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := apiclient.New(srv.URL+"/", "secret", srv.Client())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := apiclient.New("/api", "", nil)
	assert.Error(t, err)
}

func TestEvents_GetCurrent(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"currentEvent": map[string]any{
			"id": "current", "name": "University Pagirimaw 2025", "phase": "ongoing",
			"stats": map[string]int{"totalDepartmentStudents": 1000, "totalStudentsAttended": 800, "attendanceRate": 80},
		}})
	})

	e, err := c.Events().GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "University Pagirimaw 2025", e.Name)
	assert.Equal(t, 800, e.Stats.Attended)
}

func TestEvents_GetCurrentNone(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"currentEvent": nil})
	})

	_, err := c.Events().GetCurrent(context.Background())
	assert.ErrorIs(t, err, event.ErrNoCurrent)
}

func TestAttendance_RecordScan(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/attendance/scan", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0004521987", body["rfid"])
		assert.Equal(t, "current", body["eventId"])
		writeJSON(w, http.StatusOK, map[string]any{"record": map[string]any{
			"id": "r1", "studentId": "2023M1025", "name": "Zuriel", "status": "late", "type": "[AM, Sign In]",
		}})
	})

	rec, err := c.Attendance().RecordScan(context.Background(), "current", "0004521987", attendance.SourceRFID)
	require.NoError(t, err)
	assert.Equal(t, "2023M1025", rec.StudentID)
	assert.Equal(t, attendance.DefaultSession, rec.Session)
}

func TestAttendance_CheckInErrorCarriesBackendMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Event code has expired"})
	})

	_, err := c.Attendance().CheckIn(context.Background(), "2022M0000", "OLD", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrUnknownEventCode)
	assert.True(t, apiclient.IsStatus(err, http.StatusNotFound))

	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Event code has expired", apiErr.UserMessage())
}

func TestAttendance_ListByStudentSendsQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/student/attendance", r.URL.Path)
		assert.Equal(t, "2022M0000", r.URL.Query().Get("studentId"))
		writeJSON(w, http.StatusOK, map[string]any{"records": []map[string]any{{"id": "h1"}, {"id": "h2"}}})
	})

	recs, err := c.Attendance().ListByStudent(context.Background(), "2022M0000")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestReports_Decide(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantPath string
		respond  int
		wantErr  error
	}{
		{name: "accept", status: report.StatusResolved, wantPath: "/api/reports/1/accept", respond: http.StatusOK},
		{name: "reject", status: report.StatusRejected, wantPath: "/api/reports/1/reject", respond: http.StatusOK},
		{name: "already decided", status: report.StatusRejected, wantPath: "/api/reports/1/reject", respond: http.StatusConflict, wantErr: report.ErrNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				if tt.respond != http.StatusOK {
					writeJSON(w, tt.respond, map[string]string{})
					return
				}
				writeJSON(w, http.StatusOK, map[string]any{"report": map[string]any{"id": "1", "status": tt.status}})
			})

			got, err := c.Reports().Decide(context.Background(), "1", tt.status, time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestReports_DecideRejectsUnknownStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.Reports().Decide(context.Background(), "1", report.StatusPending, time.Now())
	assert.ErrorIs(t, err, report.ErrInvalidStatus)
}

func TestRequests_Submit(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events/request", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Assembly", body["eventTitle"])
		w.WriteHeader(http.StatusCreated)
	})

	req := eventrequest.Request{Title: "Assembly", DateStart: "2025-09-12", TimeStart: "08:00", DateEnd: "2025-09-12", TimeEnd: "09:00"}
	got, err := c.Requests().Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestStudents_GetByIDUnauthorized(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid Student ID"})
	})

	_, err := c.Students().GetByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, student.ErrNotFound)
}

func TestServerErrorWithoutBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Reports().List(context.Background())
	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.UserMessage())
}
