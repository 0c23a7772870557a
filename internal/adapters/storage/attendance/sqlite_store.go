package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/adapters/storage"
	domain "eventdesk/internal/domain/attendance"
	eventDomain "eventdesk/internal/domain/event"
	studentDomain "eventdesk/internal/domain/student"

	"github.com/google/uuid"
)

const selectRecord = "SELECT id, event_id, event_name, student_id, name, course, year, section, session, status, source, recorded_at FROM attendance"

// SQLiteStore implements Store using SQLite.
// Now and Grace drive the on-time/late classification of new records.
type SQLiteStore struct {
	db    storage.SQLDB
	Now   func() time.Time
	Grace time.Duration
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, Now: time.Now, Grace: domain.DefaultGrace}
}

func scanRecord(row interface{ Scan(dest ...any) error }) (domain.Record, error) {
	var r domain.Record
	var recordedAt sql.NullString
	if err := row.Scan(
		&r.ID,
		&r.EventID,
		&r.EventName,
		&r.StudentID,
		&r.Name,
		&r.Course,
		&r.Year,
		&r.Section,
		&r.Session,
		&r.Status,
		&r.Source,
		&recordedAt,
	); err != nil {
		return domain.Record{}, err
	}
	t, err := storage.ParseTime(recordedAt)
	if err != nil {
		return domain.Record{}, err
	}
	r.RecordedAt = t
	return r, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecord(ctx context.Context, db execer, r domain.Record) error {
	_, err := db.ExecContext(ctx, `INSERT INTO attendance (id, event_id, event_name, student_id, name, course, year, section, session, status, source, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET event_id=excluded.event_id, event_name=excluded.event_name,
			student_id=excluded.student_id, name=excluded.name, course=excluded.course, year=excluded.year,
			section=excluded.section, session=excluded.session, status=excluded.status,
			source=excluded.source, recorded_at=excluded.recorded_at`,
		r.ID, r.EventID, r.EventName, r.StudentID, r.Name, r.Course, r.Year, r.Section,
		r.Session, r.Status, r.Source, storage.FormatTime(r.RecordedAt))
	return err
}

// Save persists a Record as given.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	return insertRecord(ctx, s.db, entity)
}

// ListByEvent returns an event's records, newest first.
// PRE: eventID is non-empty
func (s *SQLiteStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error) {
	return s.list(ctx, selectRecord+" WHERE event_id = ? ORDER BY recorded_at DESC, id", eventID)
}

// ListByStudent returns a student's records, newest first.
// PRE: studentID is non-empty
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Record, error) {
	return s.list(ctx, selectRecord+" WHERE student_id = ? COLLATE NOCASE ORDER BY recorded_at DESC, id", studentID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// RecordScan records a station read for an event.
// PRE: identifier is a trimmed card tag or student ID
// POST: Returns domain.ErrUnknownIdentifier for unregistered identifiers
// POST: Returns domain.ErrAlreadyRecorded when the student already has a record for the event
func (s *SQLiteStore) RecordScan(ctx context.Context, eventID, identifier, source string) (domain.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Record{}, err
	}
	defer tx.Rollback()

	var name string
	var startsAt sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT name, starts_at FROM event WHERE id = ?", eventID).Scan(&name, &startsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, eventDomain.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, err
	}

	id := strings.TrimSpace(identifier)
	st, err := lookupStudent(ctx, tx, "id = ? COLLATE NOCASE OR rfid = ? COLLATE NOCASE", id, id)
	if errors.Is(err, studentDomain.ErrNotFound) {
		return domain.Record{}, domain.ErrUnknownIdentifier
	}
	if err != nil {
		return domain.Record{}, err
	}

	return s.insertNew(ctx, tx, eventID, name, startsAt, st, source, s.Now())
}

// CheckIn records a student's own check-in with an event code.
// PRE: eventCode is trimmed and non-empty
// POST: Returns domain.ErrUnknownEventCode when no open event has the code
// POST: Returns studentDomain.ErrNotFound for unknown students
func (s *SQLiteStore) CheckIn(ctx context.Context, studentID, eventCode string, at time.Time) (domain.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Record{}, err
	}
	defer tx.Rollback()

	var eventID, name, phase string
	var startsAt sql.NullString
	err = tx.QueryRowContext(ctx, "SELECT id, name, starts_at, phase FROM event WHERE code = ? COLLATE NOCASE",
		strings.TrimSpace(eventCode)).Scan(&eventID, &name, &startsAt, &phase)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && phase == eventDomain.PhasePast) {
		return domain.Record{}, domain.ErrUnknownEventCode
	}
	if err != nil {
		return domain.Record{}, err
	}

	st, err := lookupStudent(ctx, tx, "id = ? COLLATE NOCASE", strings.TrimSpace(studentID))
	if err != nil {
		return domain.Record{}, err
	}

	return s.insertNew(ctx, tx, eventID, name, startsAt, st, domain.SourceSelf, at)
}

func lookupStudent(ctx context.Context, tx *sql.Tx, where string, args ...any) (studentDomain.Student, error) {
	var st studentDomain.Student
	err := tx.QueryRowContext(ctx, "SELECT id, name, course, year, section FROM student WHERE "+where+" LIMIT 1", args...).
		Scan(&st.ID, &st.Name, &st.Course, &st.Year, &st.Section)
	if errors.Is(err, sql.ErrNoRows) {
		return studentDomain.Student{}, studentDomain.ErrNotFound
	}
	return st, err
}

func (s *SQLiteStore) insertNew(ctx context.Context, tx *sql.Tx, eventID, eventName string, startsAt sql.NullString, st studentDomain.Student, source string, at time.Time) (domain.Record, error) {
	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance WHERE event_id = ? AND student_id = ?", eventID, st.ID).Scan(&existing); err != nil {
		return domain.Record{}, err
	}
	if existing > 0 {
		return domain.Record{}, domain.ErrAlreadyRecorded
	}

	start, err := storage.ParseTime(startsAt)
	if err != nil {
		return domain.Record{}, err
	}
	r := domain.Record{
		ID:         uuid.New().String(),
		EventID:    eventID,
		EventName:  eventName,
		StudentID:  st.ID,
		Name:       st.Name,
		Course:     st.Course,
		Year:       st.Year,
		Section:    st.Section,
		Session:    domain.DefaultSession,
		Status:     domain.StatusFor(at, start, s.Grace),
		Source:     source,
		RecordedAt: at,
	}
	if err := r.Validate(); err != nil {
		return domain.Record{}, err
	}
	if err := insertRecord(ctx, tx, r); err != nil {
		return domain.Record{}, fmt.Errorf("insert attendance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Record{}, err
	}
	return r, nil
}
