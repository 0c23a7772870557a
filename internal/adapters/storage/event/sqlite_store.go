package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventdesk/internal/adapters/storage"
	"eventdesk/internal/domain/chart"
	domain "eventdesk/internal/domain/event"
)

const selectEvent = "SELECT id, code, name, starts_at, phase, total_eligible, attended, rate_percent, participants FROM event"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var e domain.Event
	var startsAt sql.NullString
	if err := row.Scan(
		&e.ID,
		&e.Code,
		&e.Name,
		&startsAt,
		&e.Phase,
		&e.Stats.TotalEligible,
		&e.Stats.Attended,
		&e.Stats.RatePercent,
		&e.Participants,
	); err != nil {
		return domain.Event{}, err
	}
	t, err := storage.ParseTime(startsAt)
	if err != nil {
		return domain.Event{}, err
	}
	e.StartsAt = t
	return e, nil
}

// GetByID retrieves an Event with its distributions.
// PRE: id is non-empty
// POST: Returns domain.ErrNotFound when no event has this ID
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	return s.getOne(ctx, selectEvent+" WHERE id = ?", domain.ErrNotFound, id)
}

// GetByCode retrieves an Event by its check-in code, ignoring case.
// PRE: code is non-empty
// POST: Returns domain.ErrNotFound when no event has this code
func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (domain.Event, error) {
	return s.getOne(ctx, selectEvent+" WHERE code = ? COLLATE NOCASE", domain.ErrNotFound, code)
}

// GetCurrent returns the most recently started ongoing event.
// POST: Returns domain.ErrNoCurrent when nothing is ongoing
func (s *SQLiteStore) GetCurrent(ctx context.Context) (domain.Event, error) {
	return s.getOne(ctx, selectEvent+" WHERE phase = ? ORDER BY starts_at DESC, id LIMIT 1", domain.ErrNoCurrent, domain.PhaseOngoing)
}

func (s *SQLiteStore) getOne(ctx context.Context, query string, notFound error, args ...any) (domain.Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, notFound
	}
	if err != nil {
		return domain.Event{}, err
	}
	if err := s.loadDistributions(ctx, &e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

// List returns every event, soonest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, selectEvent+" ORDER BY starts_at, id")
}

// ListUpcoming returns events that have not started, soonest first.
func (s *SQLiteStore) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, selectEvent+" WHERE phase = ? ORDER BY starts_at, id", domain.PhaseUpcoming)
}

// ListPast returns finished events, most recent first.
func (s *SQLiteStore) ListPast(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, selectEvent+" WHERE phase = ? ORDER BY starts_at DESC, id", domain.PhasePast)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var results []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Children are loaded after the result set is closed; the sandbox pool holds one connection.
	for i := range results {
		if err := s.loadDistributions(ctx, &results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *SQLiteStore) loadDistributions(ctx context.Context, e *domain.Event) error {
	rows, err := s.db.QueryContext(ctx, "SELECT category, value, color FROM course_share WHERE event_id = ? ORDER BY position", e.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var c chart.Entry
		if err := rows.Scan(&c.Category, &c.Value, &c.Color); err != nil {
			rows.Close()
			return err
		}
		e.Courses = append(e.Courses, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, "SELECT label, course_a, course_b FROM year_course WHERE event_id = ? ORDER BY position", e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var g chart.Group
		if err := rows.Scan(&g.Label, &g.A, &g.B); err != nil {
			return err
		}
		e.YearCourses = append(e.YearCourses, g)
	}
	return rows.Err()
}

// Save persists an Event and replaces its distributions.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	code := entity.Code
	if code == "" {
		code = entity.ID
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO event (id, code, name, starts_at, phase, total_eligible, attended, rate_percent, participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET code=excluded.code, name=excluded.name, starts_at=excluded.starts_at,
			phase=excluded.phase, total_eligible=excluded.total_eligible, attended=excluded.attended,
			rate_percent=excluded.rate_percent, participants=excluded.participants`,
		entity.ID, code, entity.Name, storage.FormatTime(entity.StartsAt), entity.Phase,
		entity.Stats.TotalEligible, entity.Stats.Attended, entity.Stats.RatePercent, entity.Participants,
	)
	if err != nil {
		return fmt.Errorf("save event %s: %w", entity.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM course_share WHERE event_id = ?", entity.ID); err != nil {
		return err
	}
	for i, c := range entity.Courses {
		if _, err := tx.ExecContext(ctx, "INSERT INTO course_share (event_id, position, category, value, color) VALUES (?, ?, ?, ?, ?)",
			entity.ID, i, c.Category, c.Value, c.Color); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM year_course WHERE event_id = ?", entity.ID); err != nil {
		return err
	}
	for i, g := range entity.YearCourses {
		if _, err := tx.ExecContext(ctx, "INSERT INTO year_course (event_id, position, label, course_a, course_b) VALUES (?, ?, ?, ?, ?)",
			entity.ID, i, g.Label, g.A, g.B); err != nil {
			return err
		}
	}
	return tx.Commit()
}
