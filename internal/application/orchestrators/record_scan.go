package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/scanner"
)

// ScannerInput identifies the station being toggled.
type ScannerInput struct {
	EventID string
}

// ScannerDeps holds dependencies for StartScanner and StopScanner.
// The caller serialises access to Session.
type ScannerDeps struct {
	Session *scanner.Session
	Now     func() time.Time
}

// ExecuteStartScanner begins a device scanning session. No device is driven; the transition is logged.
// PRE: the session is idle
// POST: manual entry is disabled
func ExecuteStartScanner(_ context.Context, input ScannerInput, deps ScannerDeps) error {
	if err := deps.Session.Start(deps.Now()); err != nil {
		return err
	}
	slog.Info("scan_event", "event", "scanner_started", "event_id", input.EventID)
	return nil
}

// ExecuteStopScanner ends the device scanning session.
// PRE: the session is scanning
// POST: manual entry is enabled again
func ExecuteStopScanner(_ context.Context, input ScannerInput, deps ScannerDeps) error {
	if err := deps.Session.Stop(deps.Now()); err != nil {
		return err
	}
	slog.Info("scan_event", "event", "scanner_stopped", "event_id", input.EventID)
	return nil
}

// RecordScanInput carries one identifier from the station.
// Manual is true for the typed field and false for device reads.
type RecordScanInput struct {
	EventID    string
	Identifier string
	Manual     bool
}

// RecordScanResult reports what happened. Recorded is false when a blank manual entry was ignored.
type RecordScanResult struct {
	Record   attendance.Record
	Recorded bool
}

// RecordScanDeps holds dependencies for RecordScan.
type RecordScanDeps struct {
	Session    *scanner.Session
	Attendance ScanRecorder
}

// ExecuteRecordScan records attendance for a card tag or typed student ID.
// PRE: EventID is non-empty
// POST: a blank manual identifier is a no-op; a manual entry while scanning returns scanner.ErrManualEntryDisabled
// POST: a device read while idle returns scanner.ErrNotScanning
func ExecuteRecordScan(ctx context.Context, input RecordScanInput, deps RecordScanDeps) (RecordScanResult, error) {
	if input.EventID == "" {
		return RecordScanResult{}, errors.New("event is required")
	}

	identifier := input.Identifier
	source := attendance.SourceRFID
	if input.Manual {
		id, ok, err := deps.Session.AcceptManual(input.Identifier)
		if err != nil {
			return RecordScanResult{}, err
		}
		if !ok {
			return RecordScanResult{}, nil
		}
		identifier = id
		source = attendance.SourceManual
		slog.Info("scan_event", "event", "manual_entry", "event_id", input.EventID, "identifier", identifier)
	} else {
		if !deps.Session.Scanning {
			return RecordScanResult{}, scanner.ErrNotScanning
		}
		identifier = strings.TrimSpace(identifier)
		if identifier == "" {
			return RecordScanResult{}, nil
		}
	}

	rec, err := deps.Attendance.RecordScan(ctx, input.EventID, identifier, source)
	if err != nil {
		slog.Warn("scan_event", "event", "scan_rejected", "event_id", input.EventID, "identifier", identifier, "error", err)
		return RecordScanResult{}, err
	}

	slog.Info("scan_event", "event", "attendance_recorded", "event_id", input.EventID, "student_id", rec.StudentID, "status", rec.Status, "source", source)
	return RecordScanResult{Record: rec, Recorded: true}, nil
}
