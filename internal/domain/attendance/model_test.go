package attendance_test

import (
	"testing"
	"time"

	"eventdesk/internal/domain/attendance"
)

// TestRecord_Validate tests validation of attendance Record.
func TestRecord_Validate(t *testing.T) {
	now := time.Date(2025, 9, 12, 15, 0, 0, 0, time.UTC)
	valid := attendance.Record{
		ID: "1", EventID: "evt-1", StudentID: "2023M1025", Name: "Zuriel Eliazar D. Calix",
		Status: attendance.StatusOnTime, Source: attendance.SourceRFID, RecordedAt: now,
	}

	tests := []struct {
		name    string
		mutate  func(r *attendance.Record)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *attendance.Record) {}, wantErr: false},
		{name: "missing student", mutate: func(r *attendance.Record) { r.StudentID = "" }, wantErr: true},
		{name: "missing event", mutate: func(r *attendance.Record) { r.EventID = "" }, wantErr: true},
		{name: "zero time", mutate: func(r *attendance.Record) { r.RecordedAt = time.Time{} }, wantErr: true},
		{name: "bad status", mutate: func(r *attendance.Record) { r.Status = "absent" }, wantErr: true},
		{name: "bad source", mutate: func(r *attendance.Record) { r.Source = "carrier pigeon" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Record.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRecord_Timestamp tests the clock and date renderings.
func TestRecord_Timestamp(t *testing.T) {
	r := attendance.Record{RecordedAt: time.Date(2026, 1, 23, 7, 1, 0, 0, time.UTC)}
	if got := r.Timestamp(); got != "07:01" {
		t.Errorf("Timestamp() = %q, want %q", got, "07:01")
	}
	if got := r.Date(); got != "January 23, 2026" {
		t.Errorf("Date() = %q, want %q", got, "January 23, 2026")
	}
}

// TestStatusFor tests on-time vs late classification.
func TestStatusFor(t *testing.T) {
	start := time.Date(2026, 1, 23, 7, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		checkIn time.Time
		want    string
	}{
		{name: "early", checkIn: start.Add(-10 * time.Minute), want: attendance.StatusOnTime},
		{name: "at grace boundary", checkIn: start.Add(attendance.DefaultGrace), want: attendance.StatusOnTime},
		{name: "after grace", checkIn: start.Add(attendance.DefaultGrace + time.Second), want: attendance.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attendance.StatusFor(tt.checkIn, start, attendance.DefaultGrace); got != tt.want {
				t.Errorf("StatusFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSummarize tests the student summary counts and rates.
func TestSummarize(t *testing.T) {
	t.Run("mixed history", func(t *testing.T) {
		records := []attendance.Record{
			{Status: attendance.StatusOnTime},
			{Status: attendance.StatusOnTime},
			{Status: attendance.StatusOnTime},
			{Status: attendance.StatusLate},
			{Status: attendance.StatusExcused},
		}
		s := attendance.Summarize(records)
		if s.TotalEvents != 5 || s.OnTime != 3 || s.Late != 1 || s.Excused != 1 {
			t.Errorf("Summarize() counts = %+v", s)
		}
		if s.OnTimeRate != 60 || s.LateRate != 20 {
			t.Errorf("Summarize() rates = %v/%v, want 60/20", s.OnTimeRate, s.LateRate)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		s := attendance.Summarize(nil)
		if s != (attendance.Summary{}) {
			t.Errorf("Summarize(nil) = %+v, want zero", s)
		}
	})
}
