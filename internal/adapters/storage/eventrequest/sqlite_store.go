package eventrequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventdesk/internal/adapters/storage"
	domain "eventdesk/internal/domain/eventrequest"

	"github.com/google/uuid"
)

// ErrInvalid is returned when a request that fails validation reaches the store.
var ErrInvalid = errors.New("event request is invalid")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new event request store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Submit stores a validated request, assigning an ID and timestamp when missing.
// PRE: value.Validate() reports no errors
// POST: Returns ErrInvalid without storing anything otherwise
func (s *SQLiteStore) Submit(ctx context.Context, value domain.Request) (domain.Request, error) {
	if value.Validate().Any() {
		return domain.Request{}, ErrInvalid
	}
	if value.ID == "" {
		value.ID = uuid.New().String()
	}
	if value.SubmittedAt.IsZero() {
		value.SubmittedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO event_request (id, title, date_start, time_start, date_end, time_end, description, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		value.ID, value.Title, value.DateStart, value.TimeStart, value.DateEnd, value.TimeEnd,
		value.Description, storage.FormatTime(value.SubmittedAt))
	if err != nil {
		return domain.Request{}, err
	}
	return value, nil
}

// List returns submitted requests, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Request, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, date_start, time_start, date_end, time_end, description, submitted_at FROM event_request ORDER BY submitted_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Request
	for rows.Next() {
		var r domain.Request
		var submittedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Title, &r.DateStart, &r.TimeStart, &r.DateEnd, &r.TimeEnd, &r.Description, &submittedAt); err != nil {
			return nil, err
		}
		if r.SubmittedAt, err = storage.ParseTime(submittedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
