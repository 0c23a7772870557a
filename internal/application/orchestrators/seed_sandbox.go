package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/chart"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/report"
	"eventdesk/internal/domain/student"
)

// DemoStudentID is the student whose screens the sandbox shows.
const DemoStudentID = "2022M0000"

// CurrentEventCode is the check-in code of the seeded ongoing event.
const CurrentEventCode = "PAGIRIMAW25"

// SandboxZone is the campus time zone used by the seeded fixtures.
var SandboxZone = time.FixedZone("PHT", 8*60*60)

// EventStoreForSeed defines the store interface needed by SeedSandbox.
type EventStoreForSeed interface {
	Save(ctx context.Context, e event.Event) error
	List(ctx context.Context) ([]event.Event, error)
}

// StudentStoreForSeed defines the store interface needed by SeedSandbox.
type StudentStoreForSeed interface {
	Save(ctx context.Context, s student.Student) error
}

// AttendanceStoreForSeed defines the store interface needed by SeedSandbox.
type AttendanceStoreForSeed interface {
	Save(ctx context.Context, r attendance.Record) error
}

// ReportStoreForSeed defines the store interface needed by SeedSandbox.
type ReportStoreForSeed interface {
	Save(ctx context.Context, r report.Report) error
}

// SeedSandboxDeps holds dependencies for SeedSandbox.
type SeedSandboxDeps struct {
	EventStore      EventStoreForSeed
	StudentStore    StudentStoreForSeed
	AttendanceStore AttendanceStoreForSeed
	ReportStore     ReportStoreForSeed
}

// ExecuteSeedSandbox loads the demo fixtures into an empty sandbox.
// PRE: stores are backed by the sandbox database
// POST: fixtures exist; a second call is a no-op
func ExecuteSeedSandbox(ctx context.Context, deps SeedSandboxDeps) error {
	existing, err := deps.EventStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, s := range sandboxStudents() {
		if err := deps.StudentStore.Save(ctx, s); err != nil {
			return fmt.Errorf("seed student %s: %w", s.ID, err)
		}
	}
	events := sandboxEvents()
	for _, e := range events {
		if err := deps.EventStore.Save(ctx, e); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}
	records := sandboxAttendance()
	for _, r := range records {
		if err := deps.AttendanceStore.Save(ctx, r); err != nil {
			return fmt.Errorf("seed attendance %s: %w", r.ID, err)
		}
	}
	reports := sandboxReports()
	for _, r := range reports {
		if err := deps.ReportStore.Save(ctx, r); err != nil {
			return fmt.Errorf("seed report %s: %w", r.ID, err)
		}
	}

	slog.Info("seed_event", "event", "sandbox_seeded", "events", len(events), "attendance", len(records), "reports", len(reports))
	return nil
}

func sandboxStudents() []student.Student {
	return []student.Student{
		{ID: "2023M1025", RFID: "0004521987", Name: "Zuriel Eliazar D. Calix", Course: "BSCS", Year: 3, Section: "B", Email: "zuriel.calix@example.edu"},
		{ID: DemoStudentID, RFID: "0004519033", Name: "Dela Cruz, Juan Felipe J.", Course: "BSCS", Year: 4, Section: "A", Email: "juan.delacruz@example.edu"},
		{ID: "2024M0311", RFID: "0004530112", Name: "Ana Marie S. Reyes", Course: "BSIT", Year: 2, Section: "A", Email: "ana.reyes@example.edu"},
		{ID: "2025M0142", RFID: "0004533870", Name: "Miguel T. Santos", Course: "BSIS", Year: 1, Section: "C"},
	}
}

func pagirimawCourses() []chart.Entry {
	return []chart.Entry{
		{Category: "CS", Value: 30, Color: "#EF4444"},
		{Category: "IT", Value: 25, Color: "#06B6D4"},
		{Category: "IS", Value: 20, Color: "#A855F7"},
		{Category: "EMC", Value: 15, Color: "#22C55E"},
		{Category: "BLIS", Value: 10, Color: "#F97316"},
	}
}

func pagirimawYears() []chart.Group {
	return []chart.Group{
		{Label: "1st", A: 34, B: 21},
		{Label: "2nd", A: 29, B: 31},
		{Label: "3rd", A: 26, B: 29},
		{Label: "4th", A: 34, B: 21},
	}
}

func sandboxEvents() []event.Event {
	pagirimaw := time.Date(2025, 9, 12, 8, 0, 0, 0, SandboxZone)
	stats := event.Stats{TotalEligible: 1000, Attended: 800, RatePercent: 80}

	events := []event.Event{
		{
			ID: "current", Code: CurrentEventCode, Name: "University Pagirimaw 2025", StartsAt: pagirimaw,
			Phase: event.PhaseOngoing, Stats: stats, Participants: 800,
			Courses: pagirimawCourses(), YearCourses: pagirimawYears(),
		},
		{ID: "upcoming-1", Code: "PAGIRIMAW-U1", Name: "University Pagirimaw", StartsAt: pagirimaw, Phase: event.PhaseUpcoming},
		{ID: "upcoming-2", Code: "PAGIRIMAW-U2", Name: "University Pagirimaw", StartsAt: pagirimaw, Phase: event.PhaseUpcoming},
		{
			ID: "ud2026-d1", Code: "UD2026-D1", Name: "University Days 2026 - Day 1",
			StartsAt: time.Date(2026, 1, 23, 7, 0, 0, 0, SandboxZone), Phase: event.PhasePast,
		},
	}
	for i := 1; i <= 3; i++ {
		events = append(events, event.Event{
			ID: fmt.Sprintf("past-%d", i), Code: fmt.Sprintf("PAGIRIMAW-P%d", i), Name: "University Pagirimaw",
			StartsAt: pagirimaw, Phase: event.PhasePast, Stats: stats, Participants: 800,
			Courses: pagirimawCourses(), YearCourses: pagirimawYears(),
		})
	}
	return events
}

func sandboxAttendance() []attendance.Record {
	var records []attendance.Record
	scanned := time.Date(2025, 9, 12, 15, 0, 0, 0, SandboxZone)
	for i := 1; i <= 10; i++ {
		records = append(records, attendance.Record{
			ID: fmt.Sprintf("%d", i), EventID: "current", EventName: "University Pagirimaw 2025",
			StudentID: "2023M1025", Name: "Zuriel Eliazar D. Calix", Course: "BSCS", Year: 3, Section: "B",
			Session: attendance.DefaultSession, Status: attendance.StatusLate, Source: attendance.SourceRFID,
			RecordedAt: scanned,
		})
	}

	history := []string{
		attendance.StatusOnTime, attendance.StatusLate, attendance.StatusOnTime, attendance.StatusOnTime,
		attendance.StatusExcused, attendance.StatusLate, attendance.StatusOnTime, attendance.StatusOnTime,
		attendance.StatusOnTime, attendance.StatusLate, attendance.StatusOnTime,
	}
	signIn := time.Date(2026, 1, 23, 7, 1, 0, 0, SandboxZone)
	for i, status := range history {
		records = append(records, attendance.Record{
			ID: fmt.Sprintf("h%d", i+1), EventID: "ud2026-d1", EventName: "University Days 2026 - Day 1",
			StudentID: DemoStudentID, Name: "Dela Cruz, Juan Felipe J.", Course: "BSCS", Year: 4, Section: "A",
			Session: attendance.DefaultSession, Status: status, Source: attendance.SourceRFID,
			RecordedAt: signIn,
		})
	}
	return records
}

const hinampangMessage = `I have submitted a photo proof that I was present during the University Hinampang.

I sincerely apologize for any inconvenience my absence may cause to the proceedings of the Hinampang. I have already informed my team captain and coach and ensured that my position will be covered by my designated substitute, Anna Reyes.

I understand the importance of the University Hinampang and fully support our school's participation. Thank you for your consideration and kind understanding regarding this matter.`

func sandboxReports() []report.Report {
	submitted := time.Date(2025, 10, 1, 22, 59, 0, 0, SandboxZone)
	base := report.Report{
		StudentID: DemoStudentID, StudentName: "Dela Cruz, Juan Felipe J.",
		Course: "BSCS", Year: "4A", Section: "AI",
		EventName:   "University Hinampang [D1-SI-AM]",
		Message:     "I have submitted a photo proof that I was present during the...",
		FullMessage: hinampangMessage,
		Status:      report.StatusPending,
		SubmittedAt: submitted,
	}

	var reports []report.Report
	for i := 1; i <= 6; i++ {
		r := base
		r.ID = fmt.Sprintf("%d", i)
		if i == 1 {
			r.Attachments = []report.Attachment{
				{Name: "Medical Certificate", ContentType: "image/png", URL: "https://via.placeholder.com/400x500/f8f9fa/6c757d?text=Medical+Certificate"},
				{Name: "Photo Proof", ContentType: "image/png", URL: "https://via.placeholder.com/400x500/f8f9fa/6c757d?text=Photo+Proof"},
			}
		}
		reports = append(reports, r)
	}

	decided := submitted.Add(24 * time.Hour)
	for i, status := range []string{report.StatusResolved, report.StatusResolved, report.StatusRejected} {
		r := base
		r.ID = fmt.Sprintf("prev_%d", i+1)
		r.Status = status
		r.DecidedAt = decided
		reports = append(reports, r)
	}
	return reports
}
