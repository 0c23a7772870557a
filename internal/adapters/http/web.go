package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"eventdesk/internal/adapters/email"
	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/application/projections"
	"eventdesk/internal/domain/scanner"
)

// AttendanceBackend reads and records attendance.
type AttendanceBackend interface {
	projections.AttendanceStore
	orchestrators.ScanRecorder
	orchestrators.CheckInRecorder
}

// ReportBackend reads, files and decides reports.
type ReportBackend interface {
	projections.ReportStore
	orchestrators.ReportDecider
	orchestrators.ReportSubmitter
}

// Backend holds all data access the screens use.
// Both the sandbox SQLite stores and the API client satisfy it.
type Backend struct {
	Events     projections.EventStore
	Attendance AttendanceBackend
	Reports    ReportBackend
	Requests   orchestrators.EventRequestSubmitter
	Students   orchestrators.StudentDirectory
}

// Options configures a Server.
type Options struct {
	// DemoStudentID is the student whose screens are shown; there is no login session.
	DemoStudentID   string
	SubmitDelay     time.Duration
	Mailer          email.Sender
	EmailFrom       string
	CSRFKey         []byte
	SecureCookies   bool
	TrustedOrigins  []string
	RateLimitPerMin int
	SlowRequest     time.Duration
	Now             func() time.Time
}

// Server serves the admin and student screens.
// The scanner session is the only state shared between requests.
type Server struct {
	backend Backend
	opts    Options
	limiter *middleware.RateLimiter

	scanMu sync.Mutex
	scan   scanner.Session
}

// NewServer creates a Server. Zero options fall back to sensible defaults.
func NewServer(backend Backend, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DemoStudentID == "" {
		opts.DemoStudentID = orchestrators.DemoStudentID
	}
	if opts.Mailer == nil {
		opts.Mailer = email.NewNoopSender()
	}
	if opts.RateLimitPerMin <= 0 {
		opts.RateLimitPerMin = 120
	}
	if opts.SlowRequest <= 0 {
		opts.SlowRequest = middleware.DefaultSlowRequest
	}
	return &Server{
		backend: backend,
		opts:    opts,
		limiter: middleware.NewRateLimiter(opts.RateLimitPerMin, time.Minute),
	}
}

// Close releases background resources.
func (s *Server) Close() {
	s.limiter.Close()
}

// Handler returns the router wrapped in the full middleware chain.
func (s *Server) Handler() http.Handler {
	// Timing -> RateLimit -> SecurityHeaders -> CSRF -> router
	return middleware.Chain(s.Router(),
		middleware.CSRF(s.opts.CSRFKey, s.opts.SecureCookies, s.opts.TrustedOrigins),
		middleware.SecurityHeaders,
		middleware.RateLimit(s.limiter),
		middleware.Timing(s.opts.SlowRequest),
	)
}

// Router wires the screen routes without middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.handleAdminDashboard)
		r.Get("/attendance", s.handleAttendance)
		r.Post("/attendance/scan", s.handleScan)
		r.Post("/attendance/scanner/{action}", s.handleScanner)
		r.Get("/past-events", s.handlePastEvents)
		r.Get("/reports", s.handleReports)
		r.Post("/reports/{id}/{decision}", s.handleDecideReport)
		r.Get("/request", s.handleRequestForm)
		r.Post("/request", s.handleSubmitRequest)
	})

	r.Get("/student-login", s.handleStudentLoginForm)
	r.Post("/student-login", s.handleStudentLogin)
	r.Route("/student-dashboard", func(r chi.Router) {
		r.Get("/", s.handleStudentDashboard)
		r.Get("/attendance", s.handleStudentAttendance)
		r.Post("/attendance/check-in", s.handleStudentCheckIn)
		r.Get("/reports", s.handleStudentReports)
		r.Post("/reports", s.handleSubmitStudentReport)
	})
	r.Get("/student/badge.png", s.handleStudentBadge)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scannerSnapshot returns a copy of the scanner session.
func (s *Server) scannerSnapshot() scanner.Session {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()
	return s.scan
}
