package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/application/projections"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/disclosure"
	"eventdesk/internal/domain/eventrequest"
	"eventdesk/internal/domain/form"
)

// handleAdminDashboard handles GET /dashboard
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetAdminDashboard(r.Context(), projections.GetAdminDashboardQuery{},
		projections.GetAdminDashboardDeps{EventStore: s.backend.Events})
	if err != nil {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}

	page := Page{Title: "Dashboard", Heading: "Event Dashboard", Nav: adminNav(navDashboard), Notice: noticeFor(r), Data: result}
	if result.HasCurrent {
		page.Subtitle = result.Current.Name
		page.Tiles = eventTiles(result.Current.Stats)
	}
	renderTemplate(w, r, http.StatusOK, "dashboard.html", page)
}

// attendanceView is the attendance screen: the current event's table plus the station state.
type attendanceView struct {
	projections.EventAttendanceResult
	Scanning            bool
	ManualEntryDisabled bool
}

// handleAttendance handles GET /dashboard/attendance
func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	s.renderAttendance(w, r, http.StatusOK, noticeFor(r), false)
}

func (s *Server) renderAttendance(w http.ResponseWriter, r *http.Request, status int, alert string, failed bool) {
	result, err := projections.QueryGetEventAttendance(r.Context(), projections.GetEventAttendanceQuery{},
		projections.GetEventAttendanceDeps{EventStore: s.backend.Events, AttendanceStore: s.backend.Attendance})
	if err != nil {
		internalError(w, err)
		return
	}
	session := s.scannerSnapshot()
	view := attendanceView{
		EventAttendanceResult: result,
		Scanning:              session.Scanning,
		ManualEntryDisabled:   session.ManualEntryDisabled(),
	}
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}

	page := Page{Title: "Attendance", Heading: "Attendance", Nav: adminNav(navAttendance), Alert: alert, Failed: failed, Data: view}
	if result.HasEvent {
		page.Subtitle = result.Event.Name
		page.Tiles = eventTiles(result.Event.Stats)
	}
	renderTemplate(w, r, status, "attendance.html", page)
}

// scanRequest is the body of POST /dashboard/attendance/scan.
// Mode "device" marks a read from the scanning station; anything else is the manual field.
type scanRequest struct {
	RFID    string `json:"rfid"`
	EventID string `json:"eventId"`
	Mode    string `json:"mode"`
}

const scanModeDevice = "device"

// handleScan handles POST /dashboard/attendance/scan
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var in scanRequest
	if isJSONBody(r) {
		if err := strictDecode(r, &in); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		in = scanRequest{RFID: r.FormValue("rfid"), EventID: r.FormValue("eventId"), Mode: r.FormValue("mode")}
	}

	s.scanMu.Lock()
	result, err := orchestrators.ExecuteRecordScan(r.Context(), orchestrators.RecordScanInput{
		EventID:    in.EventID,
		Identifier: in.RFID,
		Manual:     in.Mode != scanModeDevice,
	}, orchestrators.RecordScanDeps{Session: &s.scan, Attendance: s.backend.Attendance})
	s.scanMu.Unlock()

	if isJSONBody(r) || wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		if !result.Recorded {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]attendance.Record{"record": result.Record})
		return
	}
	if err != nil {
		s.renderAttendance(w, r, statusFor(err), orchestrators.AlertFor(err), true)
		return
	}
	http.Redirect(w, r, "/dashboard/attendance", http.StatusSeeOther)
}

// handleScanner handles POST /dashboard/attendance/scanner/{action}
func (s *Server) handleScanner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.ScannerInput{EventID: r.FormValue("eventId")}

	s.scanMu.Lock()
	deps := orchestrators.ScannerDeps{Session: &s.scan, Now: s.opts.Now}
	var err error
	switch chi.URLParam(r, "action") {
	case "start":
		err = orchestrators.ExecuteStartScanner(r.Context(), input, deps)
	case "stop":
		err = orchestrators.ExecuteStopScanner(r.Context(), input, deps)
	default:
		s.scanMu.Unlock()
		http.NotFound(w, r)
		return
	}
	s.scanMu.Unlock()

	if wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"scanning": s.scannerSnapshot().Scanning})
		return
	}
	if err != nil {
		s.renderAttendance(w, r, statusFor(err), orchestrators.AlertFor(err), true)
		return
	}
	http.Redirect(w, r, "/dashboard/attendance", http.StatusSeeOther)
}

// handlePastEvents handles GET /dashboard/past-events
func (s *Server) handlePastEvents(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetPastEvents(r.Context(),
		projections.GetPastEventsQuery{Disclosure: disclosure.FromQuery(r.URL.Query())},
		projections.GetPastEventsDeps{EventStore: s.backend.Events})
	if err != nil {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, http.StatusOK, "past_events.html", Page{
		Title: "Past Events", Heading: "Past Events", Nav: adminNav(navPastEvents), Data: result,
	})
}

// handleReports handles GET /dashboard/reports
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	s.renderReports(w, r, http.StatusOK, noticeFor(r), false)
}

func (s *Server) renderReports(w http.ResponseWriter, r *http.Request, status int, alert string, failed bool) {
	result, err := projections.QueryGetReportQueue(r.Context(),
		projections.GetReportQueueQuery{Disclosure: disclosure.FromQuery(r.URL.Query())},
		projections.GetReportQueueDeps{ReportStore: s.backend.Reports})
	if err != nil {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, status, result)
		return
	}
	renderTemplate(w, r, status, "reports.html", Page{
		Title: "Reports", Heading: "Reports", Nav: adminNav(navReports), Alert: alert, Failed: failed, Data: result,
	})
}

// handleDecideReport handles POST /dashboard/reports/{id}/{decision}
func (s *Server) handleDecideReport(w http.ResponseWriter, r *http.Request) {
	decision := chi.URLParam(r, "decision")
	decided, err := orchestrators.ExecuteModerateReport(r.Context(), orchestrators.ModerateReportInput{
		ReportID: chi.URLParam(r, "id"),
		Decision: decision,
	}, orchestrators.ModerateReportDeps{
		Reports:     s.backend.Reports,
		Students:    s.backend.Students,
		Mailer:      s.opts.Mailer,
		FromAddress: s.opts.EmailFrom,
		Now:         s.opts.Now,
	})

	if wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"report": decided, "message": orchestrators.DecisionAlert(decision)})
		return
	}
	if err != nil {
		s.renderReports(w, r, statusFor(err), orchestrators.AlertFor(err), true)
		return
	}

	// Keep the accordion where it was; the decided report moves to the previous list.
	state := disclosure.FromQuery(r.URL.Query())
	if err := r.ParseForm(); err == nil {
		state = disclosure.FromQuery(r.Form)
	}
	notice := noticeReportAccepted
	if decision == orchestrators.DecisionReject {
		notice = noticeReportRejected
	}
	redirectWithNotice(w, r, "/dashboard/reports", state.Query(), notice)
}

// requestView is the event request form between submissions.
type requestView struct {
	Form       eventrequest.Request
	Errors     form.Errors
	Submitting bool
}

// handleRequestForm handles GET /dashboard/request
func (s *Server) handleRequestForm(w http.ResponseWriter, r *http.Request) {
	renderRequestForm(w, r, http.StatusOK, requestView{Errors: form.Errors{}}, noticeFor(r), false)
}

func renderRequestForm(w http.ResponseWriter, r *http.Request, status int, view requestView, alert string, failed bool) {
	renderTemplate(w, r, status, "request.html", Page{
		Title: "Request Event", Heading: "Request Event", Subtitle: "Event Request Form",
		Nav: adminNav(navRequest), Alert: alert, Failed: failed, Data: view,
	})
}

// handleSubmitRequest handles POST /dashboard/request
func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req eventrequest.Request
	if isJSONBody(r) {
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		req = eventrequest.Request{
			Title:       r.FormValue(eventrequest.FieldTitle),
			DateStart:   r.FormValue(eventrequest.FieldDateStart),
			TimeStart:   r.FormValue(eventrequest.FieldTimeStart),
			DateEnd:     r.FormValue(eventrequest.FieldDateEnd),
			TimeEnd:     r.FormValue(eventrequest.FieldTimeEnd),
			Description: strings.TrimSpace(r.FormValue("description")),
		}
	}

	var state form.State
	saved, err := orchestrators.ExecuteSubmitEventRequest(r.Context(), orchestrators.SubmitEventRequestInput{
		Request: &req,
		State:   &state,
	}, orchestrators.SubmitEventRequestDeps{
		Requests:   s.backend.Requests,
		GenerateID: generateID,
		Now:        s.opts.Now,
		Delay:      s.opts.SubmitDelay,
	})

	if isJSONBody(r) || wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"request": saved, "message": state.Alert})
		return
	}
	if err != nil {
		alert := state.Alert
		var ve *orchestrators.ValidationError
		if errors.As(err, &ve) {
			alert = ""
		} else if alert == "" {
			alert = orchestrators.AlertFor(err)
		}
		renderRequestForm(w, r, statusFor(err), requestView{Form: req, Errors: fieldErrors(err), Submitting: state.Submitting}, alert, alert != "")
		return
	}
	redirectWithNotice(w, r, "/dashboard/request", url.Values{}, noticeRequestSubmitted)
}
