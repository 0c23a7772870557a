package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/adapters/storage"
	domain "eventdesk/internal/domain/report"

	"github.com/google/uuid"
)

const selectReport = "SELECT id, student_id, student_name, course, year, section, event_id, event_name, message, full_message, status, submitted_at, decided_at FROM report"

// querier is satisfied by storage.SQLDB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new report store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanReport(row interface{ Scan(dest ...any) error }) (domain.Report, error) {
	var r domain.Report
	var eventID, submittedAt, decidedAt sql.NullString
	if err := row.Scan(
		&r.ID,
		&r.StudentID,
		&r.StudentName,
		&r.Course,
		&r.Year,
		&r.Section,
		&eventID,
		&r.EventName,
		&r.Message,
		&r.FullMessage,
		&r.Status,
		&submittedAt,
		&decidedAt,
	); err != nil {
		return domain.Report{}, err
	}
	r.EventID = eventID.String
	var err error
	if r.SubmittedAt, err = storage.ParseTime(submittedAt); err != nil {
		return domain.Report{}, err
	}
	if r.DecidedAt, err = storage.ParseTime(decidedAt); err != nil {
		return domain.Report{}, err
	}
	return r, nil
}

// GetByID retrieves a Report with its attachments.
// PRE: id is non-empty
// POST: Returns domain.ErrNotFound when absent
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Report, error) {
	return getByID(ctx, s.db, id)
}

func getByID(ctx context.Context, q querier, id string) (domain.Report, error) {
	r, err := scanReport(q.QueryRowContext(ctx, selectReport+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Report{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}
	if r.Attachments, err = loadAttachments(ctx, q, r.ID); err != nil {
		return domain.Report{}, err
	}
	return r, nil
}

func loadAttachments(ctx context.Context, q querier, reportID string) ([]domain.Attachment, error) {
	rows, err := q.QueryContext(ctx, "SELECT name, content_type, size, url FROM report_attachment WHERE report_id = ? ORDER BY position", reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.Name, &a.ContentType, &a.Size, &a.URL); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// List returns every report in submission order.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Report, error) {
	return s.list(ctx, selectReport+" ORDER BY submitted_at, id")
}

// ListByStudent returns one student's reports in submission order.
// PRE: studentID is non-empty
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Report, error) {
	return s.list(ctx, selectReport+" WHERE student_id = ? COLLATE NOCASE ORDER BY submitted_at, id", studentID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var results []domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range results {
		if results[i].Attachments, err = loadAttachments(ctx, s.db, results[i].ID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Save persists a Report and replaces its attachment references.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Report) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := save(ctx, tx, entity); err != nil {
		return err
	}
	return tx.Commit()
}

func save(ctx context.Context, q querier, entity domain.Report) error {
	var eventID any
	if entity.EventID != "" {
		eventID = entity.EventID
	}
	_, err := q.ExecContext(ctx, `INSERT INTO report (id, student_id, student_name, course, year, section, event_id, event_name, message, full_message, status, submitted_at, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET student_id=excluded.student_id, student_name=excluded.student_name,
			course=excluded.course, year=excluded.year, section=excluded.section, event_id=excluded.event_id,
			event_name=excluded.event_name, message=excluded.message, full_message=excluded.full_message,
			status=excluded.status, submitted_at=excluded.submitted_at, decided_at=excluded.decided_at`,
		entity.ID, entity.StudentID, entity.StudentName, entity.Course, entity.Year, entity.Section,
		eventID, entity.EventName, entity.Message, entity.FullMessage, entity.Status,
		storage.FormatTime(entity.SubmittedAt), storage.FormatTime(entity.DecidedAt))
	if err != nil {
		return fmt.Errorf("save report %s: %w", entity.ID, err)
	}

	if _, err := q.ExecContext(ctx, "DELETE FROM report_attachment WHERE report_id = ?", entity.ID); err != nil {
		return err
	}
	for i, a := range entity.Attachments {
		if _, err := q.ExecContext(ctx, "INSERT INTO report_attachment (report_id, position, name, content_type, size, url) VALUES (?, ?, ?, ?, ?, ?)",
			entity.ID, i, a.Name, a.ContentType, a.Size, a.URL); err != nil {
			return err
		}
	}
	return nil
}

// Submit files a new pending report, assigning an ID when missing.
// PRE: value is a new report
// POST: the stored report is returned
func (s *SQLiteStore) Submit(ctx context.Context, value domain.Report) (domain.Report, error) {
	if value.ID == "" {
		value.ID = uuid.New().String()
	}
	if value.Status == "" {
		value.Status = domain.StatusPending
	}
	if err := s.Save(ctx, value); err != nil {
		return domain.Report{}, err
	}
	return value, nil
}

// Decide resolves or rejects a pending report atomically.
// PRE: status is domain.StatusResolved or domain.StatusRejected
// POST: Returns domain.ErrNotPending if the report was already decided
func (s *SQLiteStore) Decide(ctx context.Context, id, status string, at time.Time) (domain.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Report{}, err
	}
	defer tx.Rollback()

	r, err := getByID(ctx, tx, id)
	if err != nil {
		return domain.Report{}, err
	}
	switch status {
	case domain.StatusResolved:
		err = r.Accept(at)
	case domain.StatusRejected:
		err = r.Reject(at)
	default:
		err = domain.ErrInvalidStatus
	}
	if err != nil {
		return domain.Report{}, err
	}

	if _, err := tx.ExecContext(ctx, "UPDATE report SET status = ?, decided_at = ? WHERE id = ?",
		r.Status, storage.FormatTime(r.DecidedAt), r.ID); err != nil {
		return domain.Report{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Report{}, err
	}
	return r, nil
}
