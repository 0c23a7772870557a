package attendance_test

import (
	"context"
	"testing"
	"time"

	"eventdesk/internal/adapters/storage"
	attendancestore "eventdesk/internal/adapters/storage/attendance"
	eventstore "eventdesk/internal/adapters/storage/event"
	studentstore "eventdesk/internal/adapters/storage/student"
	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventStart = time.Date(2025, 9, 12, 8, 0, 0, 0, time.UTC)

func newStore(t *testing.T, now time.Time) *attendancestore.SQLiteStore {
	t.Helper()
	ctx := context.Background()
	db, err := storage.OpenSandbox(ctx, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events := eventstore.NewSQLiteStore(db)
	require.NoError(t, events.Save(ctx, event.Event{ID: "current", Code: "PAGIRIMAW25", Name: "University Pagirimaw 2025", StartsAt: eventStart, Phase: event.PhaseOngoing}))
	require.NoError(t, events.Save(ctx, event.Event{ID: "old", Code: "OLD", Name: "Old Event", StartsAt: eventStart.Add(-72 * time.Hour), Phase: event.PhasePast}))

	students := studentstore.NewSQLiteStore(db)
	require.NoError(t, students.Save(ctx, student.Student{ID: "2023M1025", RFID: "0004521987", Name: "Zuriel Eliazar D. Calix", Course: "BSCS", Year: 3, Section: "B"}))
	require.NoError(t, students.Save(ctx, student.Student{ID: "2024M0311", Name: "Ana Marie S. Reyes", Course: "BSIT", Year: 2, Section: "A"}))

	s := attendancestore.NewSQLiteStore(db)
	s.Now = func() time.Time { return now }
	return s
}

func TestSQLiteStore_RecordScan(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		now        time.Time
		identifier string
		wantStatus string
		wantErr    error
	}{
		{name: "card tag on time", now: eventStart.Add(10 * time.Minute), identifier: "0004521987", wantStatus: attendance.StatusOnTime},
		{name: "student id late", now: eventStart.Add(7 * time.Hour), identifier: "2023m1025", wantStatus: attendance.StatusLate},
		{name: "unknown card", now: eventStart, identifier: "9999", wantErr: attendance.ErrUnknownIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, tt.now)
			rec, err := s.RecordScan(ctx, "current", tt.identifier, attendance.SourceRFID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2023M1025", rec.StudentID)
			assert.Equal(t, "Zuriel Eliazar D. Calix", rec.Name)
			assert.Equal(t, tt.wantStatus, rec.Status)
			assert.Equal(t, attendance.DefaultSession, rec.Session)

			listed, err := s.ListByEvent(ctx, "current")
			require.NoError(t, err)
			require.Len(t, listed, 1)
			assert.Equal(t, rec.ID, listed[0].ID)
		})
	}
}

func TestSQLiteStore_RecordScanTwice(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, eventStart)

	_, err := s.RecordScan(ctx, "current", "2024M0311", attendance.SourceManual)
	require.NoError(t, err)
	_, err = s.RecordScan(ctx, "current", "2024M0311", attendance.SourceManual)
	assert.ErrorIs(t, err, attendance.ErrAlreadyRecorded)

	_, err = s.RecordScan(ctx, "missing", "2024M0311", attendance.SourceManual)
	assert.ErrorIs(t, err, event.ErrNotFound)
}

func TestSQLiteStore_CheckIn(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, eventStart)

	rec, err := s.CheckIn(ctx, "2024M0311", "pagirimaw25", eventStart.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, attendance.SourceSelf, rec.Source)
	assert.Equal(t, attendance.StatusOnTime, rec.Status)
	assert.Equal(t, "University Pagirimaw 2025", rec.EventName)

	_, err = s.CheckIn(ctx, "2024M0311", "NOPE", eventStart)
	assert.ErrorIs(t, err, attendance.ErrUnknownEventCode)

	_, err = s.CheckIn(ctx, "2024M0311", "OLD", eventStart)
	assert.ErrorIs(t, err, attendance.ErrUnknownEventCode, "finished events do not accept check-ins")

	_, err = s.CheckIn(ctx, "nobody", "PAGIRIMAW25", eventStart)
	assert.ErrorIs(t, err, student.ErrNotFound)

	history, err := s.ListByStudent(ctx, "2024M0311")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLiteStore_SaveOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, eventStart)
	base := attendance.Record{
		EventID: "current", EventName: "University Pagirimaw 2025", StudentID: "2023M1025", Name: "Zuriel",
		Course: "BSCS", Year: 3, Section: "B", Session: attendance.DefaultSession,
		Status: attendance.StatusLate, Source: attendance.SourceRFID,
	}
	first, second := base, base
	first.ID, first.RecordedAt = "1", eventStart.Add(time.Hour)
	second.ID, second.RecordedAt = "2", eventStart.Add(2*time.Hour)
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	listed, err := s.ListByEvent(ctx, "current")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "2", listed[0].ID)
	assert.Equal(t, "10:00", listed[0].Timestamp())

	assert.Error(t, s.Save(ctx, attendance.Record{ID: "bad"}))
}
