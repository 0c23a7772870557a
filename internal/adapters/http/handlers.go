package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/form"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/scanner"
	"eventdesk/internal/domain/student"
)

//go:embed templates/*.html
var templateFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// wantsJSON reports whether the client asked for the view as JSON.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response_failed", "error", err)
	}
}

// errorBody is the {message} shape shared with the backend API.
type errorBody struct {
	Message string      `json:"message"`
	Errors  form.Errors `json:"errors,omitempty"`
}

// writeJSONError reports a failed submission as {message, errors}.
func writeJSONError(w http.ResponseWriter, err error) {
	body := errorBody{Message: orchestrators.AlertFor(err)}
	var ve *orchestrators.ValidationError
	if errors.As(err, &ve) {
		body.Message = "Please correct the highlighted fields."
		body.Errors = ve.Fields
	}
	writeJSON(w, statusFor(err), body)
}

// fieldErrors returns the field errors carried by err, if any.
func fieldErrors(err error) form.Errors {
	var ve *orchestrators.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return form.Errors{}
}

// statusFor maps a failed submission to the status of the re-rendered page.
func statusFor(err error) int {
	var ve *orchestrators.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, report.ErrNotPending),
		errors.Is(err, attendance.ErrAlreadyRecorded),
		errors.Is(err, scanner.ErrManualEntryDisabled),
		errors.Is(err, scanner.ErrAlreadyScanning),
		errors.Is(err, scanner.ErrNotScanning),
		errors.Is(err, form.ErrAlreadySubmitting):
		return http.StatusConflict
	case errors.Is(err, report.ErrNotFound),
		errors.Is(err, event.ErrNotFound),
		errors.Is(err, student.ErrNotFound),
		errors.Is(err, attendance.ErrUnknownIdentifier),
		errors.Is(err, attendance.ErrUnknownEventCode):
		return http.StatusNotFound
	case errors.Is(err, orchestrators.ErrUnknownDecision):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// Page is the data every layout render receives.
type Page struct {
	Title    string
	Heading  string
	Subtitle string
	Nav      Nav
	Notice   string
	Alert    string
	Failed   bool
	Tiles    []Tile
	Data     any
}

// pages holds one parsed template set per screen: layout, partials and the page itself.
var pages = parsePages(
	"dashboard.html",
	"attendance.html",
	"past_events.html",
	"reports.html",
	"request.html",
	"student_login.html",
	"student_dashboard.html",
	"student_attendance.html",
	"student_reports.html",
)

func parsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.New("layout.html").Funcs(baseFuncs(nil)).
			ParseFS(templateFS, "templates/layout.html", "templates/partials.html", "templates/"+name))
	}
	return out
}

// baseFuncs builds the template helpers. r is nil at parse time.
func baseFuncs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"csrfField": func() template.HTML {
			if r == nil {
				return ""
			}
			return csrf.TemplateField(r)
		},
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"eventTilesOf": func(e event.Event) []Tile { return eventTiles(e.Stats) },
		"percent":      func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		"px":           func(v float64) string { return fmt.Sprintf("%.1fpx", v) },
		"fixed":        func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"fileSize": func(n int64) string {
			switch {
			case n >= 1<<20:
				return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
			case n >= 1<<10:
				return fmt.Sprintf("%.0f KB", float64(n)/(1<<10))
			default:
				return fmt.Sprintf("%d B", n)
			}
		},
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, page Page) {
	base, ok := pages[templateName]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %s", templateName))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tpl.Funcs(baseFuncs(r))

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, page); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Notice keys carried in the ?notice= parameter after a redirect.
const (
	noticeRequestSubmitted = "request-submitted"
	noticeReportAccepted   = "report-accepted"
	noticeReportRejected   = "report-rejected"
	noticeReportSubmitted  = "report-submitted"
	noticeCheckedIn        = "checked-in"
	noticeLoggedIn         = "logged-in"
)

// noticeFor turns the ?notice= key into its alert text. Unknown keys show nothing.
func noticeFor(r *http.Request) string {
	q := r.URL.Query()
	switch q.Get("notice") {
	case noticeRequestSubmitted:
		return orchestrators.MsgEventRequestSubmitted
	case noticeReportAccepted:
		return orchestrators.MsgReportAccepted
	case noticeReportRejected:
		return orchestrators.MsgReportRejected
	case noticeReportSubmitted:
		return orchestrators.MsgReportSubmitted
	case noticeCheckedIn:
		if ev := strings.TrimSpace(q.Get("event")); ev != "" {
			return orchestrators.MsgCheckedIn + ev + "!"
		}
	case noticeLoggedIn:
		return orchestrators.MsgStudentLoggedIn
	}
	return ""
}

// redirectWithNotice sends the browser to path with the notice key appended to extra.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path string, extra url.Values, notice string) {
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	q.Set("notice", notice)
	http.Redirect(w, r, path+"?"+q.Encode(), http.StatusSeeOther)
}
