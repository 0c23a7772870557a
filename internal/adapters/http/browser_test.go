//go:build browser

package web_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	web "eventdesk/internal/adapters/http"
	"eventdesk/internal/adapters/storage"
	attendanceStore "eventdesk/internal/adapters/storage/attendance"
	eventStore "eventdesk/internal/adapters/storage/event"
	eventRequestStore "eventdesk/internal/adapters/storage/eventrequest"
	reportStore "eventdesk/internal/adapters/storage/report"
	studentStore "eventdesk/internal/adapters/storage/student"
	"eventdesk/internal/application/orchestrators"
)

// testApp holds the running server and Playwright handles.
type testApp struct {
	BaseURL string
	Browser playwright.Browser
}

// newTestApp serves the full middleware chain over a seeded sandbox and starts Chromium.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	ctx := context.Background()
	db, err := storage.OpenSandbox(ctx, time.Second)
	if err != nil {
		t.Fatalf("failed to open sandbox: %v", err)
	}
	events := eventStore.NewSQLiteStore(db)
	students := studentStore.NewSQLiteStore(db)
	records := attendanceStore.NewSQLiteStore(db)
	reports := reportStore.NewSQLiteStore(db)
	if err := orchestrators.ExecuteSeedSandbox(ctx, orchestrators.SeedSandboxDeps{
		EventStore: events, StudentStore: students, AttendanceStore: records, ReportStore: reports,
	}); err != nil {
		t.Fatalf("failed to seed sandbox: %v", err)
	}

	srv := web.NewServer(web.Backend{
		Events:     events,
		Attendance: records,
		Reports:    reports,
		Requests:   eventRequestStore.NewSQLiteStore(db),
		Students:   students,
	}, web.Options{
		DemoStudentID: orchestrators.DemoStudentID,
		CSRFKey:       []byte("0123456789abcdef0123456789abcdef"),
	})
	ts := httptest.NewServer(srv.Handler())

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		ts.Close()
		srv.Close()
		db.Close()
	})
	return &testApp{BaseURL: ts.URL, Browser: browser}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

func (a *testApp) goTo(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + path); err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
}

// alertText waits for the page alert and returns its text.
func alertText(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	loc := page.Locator(selector)
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{Timeout: playwright.Float(5000)}); err != nil {
		t.Fatalf("%s not shown: %v", selector, err)
	}
	text, err := loc.TextContent()
	if err != nil {
		t.Fatalf("failed to read %s: %v", selector, err)
	}
	return strings.TrimSpace(text)
}

func TestBrowser_ManualScanAddsRow(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.goTo(t, page, "/dashboard/attendance")

	if err := page.Locator("#manual-rfid").Fill("2024M0311"); err != nil {
		t.Fatalf("failed to fill identifier: %v", err)
	}
	if err := page.Locator("#manual-scan button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit scan: %v", err)
	}
	if err := page.Locator("td", playwright.PageLocatorOptions{HasText: "Ana Marie S. Reyes"}).First().WaitFor(); err != nil {
		t.Fatalf("scanned student not listed: %v", err)
	}
}

func TestBrowser_ScannerDisablesManualEntry(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.goTo(t, page, "/dashboard/attendance")

	if err := page.Locator("button", playwright.PageLocatorOptions{HasText: "Start Scanning"}).Click(); err != nil {
		t.Fatalf("failed to start scanner: %v", err)
	}
	if err := page.Locator("button", playwright.PageLocatorOptions{HasText: "Stop Scanning"}).WaitFor(); err != nil {
		t.Fatalf("scanner did not start: %v", err)
	}
	disabled, err := page.Locator("#manual-rfid").IsDisabled()
	if err != nil {
		t.Fatalf("failed to read manual field: %v", err)
	}
	if !disabled {
		t.Error("manual entry should be disabled while scanning")
	}
}

func TestBrowser_StudentCheckIn(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.goTo(t, page, "/student-dashboard/attendance")

	if err := page.Locator("#eventCode").Fill(orchestrators.CurrentEventCode); err != nil {
		t.Fatalf("failed to fill event code: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit check-in: %v", err)
	}
	got := alertText(t, page, "[role=status]")
	if got != "Successfully checked in to University Pagirimaw 2025!" {
		t.Errorf("notice = %q", got)
	}
}

func TestBrowser_AcceptReport(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.goTo(t, page, "/dashboard/reports")

	if err := page.Locator("#pending > a").Click(); err != nil {
		t.Fatalf("failed to open pending section: %v", err)
	}
	if err := page.Locator("#report-1 > a").Click(); err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	if err := page.Locator("#report-1 button", playwright.PageLocatorOptions{HasText: "Accept"}).Click(); err != nil {
		t.Fatalf("failed to accept report: %v", err)
	}
	if got := alertText(t, page, "[role=status]"); got != orchestrators.MsgReportAccepted {
		t.Errorf("notice = %q", got)
	}
	if !strings.Contains(page.URL(), "section=pending") {
		t.Errorf("accordion state lost: %s", page.URL())
	}
}

func TestBrowser_EventRequestValidation(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.goTo(t, page, "/dashboard/request")

	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit request: %v", err)
	}
	if got := alertText(t, page, ".error >> nth=0"); got != "Event title is required" {
		t.Errorf("first error = %q", got)
	}
}
