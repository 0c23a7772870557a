package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"eventdesk/internal/adapters/qr"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/application/projections"
	"eventdesk/internal/domain/disclosure"
	"eventdesk/internal/domain/form"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

// maxReportUpload bounds a report submission: every attachment at full size plus the text fields.
const maxReportUpload = report.MaxAttachments*report.MaxAttachmentSize + 1<<20

// loginView is the student login form.
type loginView struct {
	Form   orchestrators.StudentLoginInput
	Errors form.Errors
}

// handleStudentLoginForm handles GET /student-login
func (s *Server) handleStudentLoginForm(w http.ResponseWriter, r *http.Request) {
	renderLogin(w, r, http.StatusOK, loginView{Errors: form.Errors{}}, "")
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, view loginView, alert string) {
	renderTemplate(w, r, status, "student_login.html", Page{
		Title: "Student Login", Heading: "Student Login", Alert: alert, Failed: alert != "", Data: view,
	})
}

// handleStudentLogin handles POST /student-login
func (s *Server) handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.StudentLoginInput
	if isJSONBody(r) {
		var body struct {
			StudentID  string `json:"studentId"`
			RememberMe bool   `json:"rememberMe"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input = orchestrators.StudentLoginInput{StudentID: body.StudentID, RememberMe: body.RememberMe}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input = orchestrators.StudentLoginInput{
			StudentID:  r.FormValue("studentId"),
			RememberMe: r.FormValue("rememberMe") != "",
		}
	}

	st, err := orchestrators.ExecuteStudentLogin(r.Context(), input, orchestrators.StudentLoginDeps{Students: s.backend.Students})
	if isJSONBody(r) || wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"student": st, "message": orchestrators.MsgStudentLoggedIn})
		return
	}
	if err != nil {
		alert := ""
		var ve *orchestrators.ValidationError
		if !errors.As(err, &ve) {
			alert = orchestrators.AlertFor(err)
		}
		renderLogin(w, r, statusFor(err), loginView{Form: input, Errors: fieldErrors(err)}, alert)
		return
	}
	redirectWithNotice(w, r, "/student-dashboard", url.Values{}, noticeLoggedIn)
}

// handleStudentDashboard handles GET /student-dashboard
func (s *Server) handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetStudentDashboard(r.Context(),
		projections.GetStudentDashboardQuery{StudentID: s.opts.DemoStudentID},
		projections.GetStudentDashboardDeps{
			StudentStore:    s.backend.Students,
			AttendanceStore: s.backend.Attendance,
			EventStore:      s.backend.Events,
		})
	if err != nil {
		s.studentError(w, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, http.StatusOK, "student_dashboard.html", Page{
		Title: "Student Dashboard", Heading: "Student Dashboard", Subtitle: result.Student.Name,
		Nav: studentNav(navDashboard), Notice: noticeFor(r), Tiles: studentRateTiles(result.Summary), Data: result,
	})
}

// studentAttendanceView is the check-in page.
type studentAttendanceView struct {
	projections.StudentAttendanceResult
	EventCode  string
	Errors     form.Errors
	Submitting bool
}

// handleStudentAttendance handles GET /student-dashboard/attendance
func (s *Server) handleStudentAttendance(w http.ResponseWriter, r *http.Request) {
	s.renderStudentAttendance(w, r, http.StatusOK, studentAttendanceView{Errors: form.Errors{}}, noticeFor(r), false)
}

func (s *Server) renderStudentAttendance(w http.ResponseWriter, r *http.Request, status int, view studentAttendanceView, alert string, failed bool) {
	result, err := projections.QueryGetStudentAttendance(r.Context(),
		projections.GetStudentDashboardQuery{StudentID: s.opts.DemoStudentID},
		projections.GetStudentAttendanceDeps{StudentStore: s.backend.Students, AttendanceStore: s.backend.Attendance})
	if err != nil {
		s.studentError(w, err)
		return
	}
	view.StudentAttendanceResult = result
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}
	renderTemplate(w, r, status, "student_attendance.html", Page{
		Title: "Attendance", Heading: "Attendance", Subtitle: result.Student.Name,
		Nav: studentNav(navAttendance), Alert: alert, Failed: failed, Tiles: studentCountTiles(result.Summary), Data: view,
	})
}

// handleStudentCheckIn handles POST /student-dashboard/attendance/check-in
func (s *Server) handleStudentCheckIn(w http.ResponseWriter, r *http.Request) {
	var code string
	if isJSONBody(r) {
		var body struct {
			EventCode string `json:"eventCode"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		code = body.EventCode
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		code = r.FormValue("eventCode")
	}

	var state form.State
	rec, err := orchestrators.ExecuteStudentCheckIn(r.Context(), orchestrators.StudentCheckInInput{
		StudentID: s.opts.DemoStudentID,
		EventCode: code,
		State:     &state,
	}, orchestrators.StudentCheckInDeps{
		Attendance: s.backend.Attendance,
		Now:        s.opts.Now,
		Delay:      s.opts.SubmitDelay,
	})

	if isJSONBody(r) || wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"record": rec, "message": state.Alert})
		return
	}
	if err != nil {
		view := studentAttendanceView{EventCode: code, Errors: fieldErrors(err), Submitting: state.Submitting}
		alert := state.Alert
		var ve *orchestrators.ValidationError
		if errors.As(err, &ve) {
			// A blank code is shown as an alert rather than inline.
			alert = ve.Fields.Get("eventCode")
		} else if alert == "" {
			alert = orchestrators.AlertFor(err)
		}
		s.renderStudentAttendance(w, r, statusFor(err), view, alert, true)
		return
	}
	redirectWithNotice(w, r, "/student-dashboard/attendance", url.Values{"event": {rec.EventName}}, noticeCheckedIn)
}

// handleStudentBadge handles GET /student/badge.png
func (s *Server) handleStudentBadge(w http.ResponseWriter, r *http.Request) {
	png, err := qr.Badge(s.opts.DemoStudentID, qr.DefaultSize)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// studentReportsView is the reports page: the form and the student's previous reports.
type studentReportsView struct {
	projections.StudentReportsResult
	Form       orchestrators.StudentReportForm
	Errors     form.Errors
	Submitting bool
}

// handleStudentReports handles GET /student-dashboard/reports
func (s *Server) handleStudentReports(w http.ResponseWriter, r *http.Request) {
	s.renderStudentReports(w, r, http.StatusOK, studentReportsView{Errors: form.Errors{}}, noticeFor(r), false)
}

func (s *Server) renderStudentReports(w http.ResponseWriter, r *http.Request, status int, view studentReportsView, alert string, failed bool) {
	result, err := projections.QueryGetStudentReports(r.Context(),
		projections.GetStudentReportsQuery{StudentID: s.opts.DemoStudentID, Disclosure: disclosure.FromQuery(r.URL.Query())},
		projections.GetStudentReportsDeps{StudentStore: s.backend.Students, ReportStore: s.backend.Reports})
	if err != nil {
		s.studentError(w, err)
		return
	}
	if view.Errors.Any() {
		result.FormOpen = true
	}
	view.StudentReportsResult = result
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}
	renderTemplate(w, r, status, "student_reports.html", Page{
		Title: "Reports", Heading: "Reports", Subtitle: result.Student.Name,
		Nav: studentNav(navReports), Alert: alert, Failed: failed, Data: view,
	})
}

// handleSubmitStudentReport handles POST /student-dashboard/reports
// Attachments are kept as references; file bytes are discarded.
func (s *Server) handleSubmitStudentReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportUpload)
	var f orchestrators.StudentReportForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()
		for _, fh := range r.MultipartForm.File["attachments"] {
			f.Attachments = append(f.Attachments, report.Attachment{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
			})
		}
	} else if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	f.EventTitle = r.FormValue("eventTitle")
	f.Description = r.FormValue("description")

	var state form.State
	saved, err := orchestrators.ExecuteSubmitStudentReport(r.Context(), orchestrators.SubmitStudentReportInput{
		StudentID: s.opts.DemoStudentID,
		Form:      &f,
		State:     &state,
	}, orchestrators.SubmitStudentReportDeps{
		Reports:    s.backend.Reports,
		Students:   s.backend.Students,
		GenerateID: generateID,
		Now:        s.opts.Now,
		Delay:      s.opts.SubmitDelay,
	})

	if wantsJSON(r) {
		if err != nil {
			writeJSONError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"report": saved, "message": state.Alert})
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
		view := studentReportsView{Form: f, Errors: fieldErrors(err), Submitting: state.Submitting}
		if !view.Errors.Any() {
			// Keep the form open so the typed values are visible next to the alert.
			view.Errors = form.Errors{}
			r.URL.RawQuery = disclosure.State{Section: projections.SectionReportForm}.Query().Encode()
		}
		s.renderStudentReports(w, r, statusFor(err), view, alert, alert != "")
		return
	}
	redirectWithNotice(w, r, "/student-dashboard/reports",
		disclosure.State{Section: projections.SectionMyReports}.Query(), noticeReportSubmitted)
}

// studentError renders a missing demo student as 404 and anything else as a 500.
func (s *Server) studentError(w http.ResponseWriter, err error) {
	if errors.Is(err, student.ErrNotFound) {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}
	internalError(w, err)
}
