package student

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"eventdesk/internal/adapters/storage"
	domain "eventdesk/internal/domain/student"
)

const selectStudent = "SELECT id, rfid, name, course, year, section, email FROM student"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new student store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ScanStudent reads one student row in selectStudent column order.
func ScanStudent(row interface{ Scan(dest ...any) error }) (domain.Student, error) {
	var s domain.Student
	var rfid sql.NullString
	if err := row.Scan(&s.ID, &rfid, &s.Name, &s.Course, &s.Year, &s.Section, &s.Email); err != nil {
		return domain.Student{}, err
	}
	s.RFID = rfid.String
	return s, nil
}

// GetByID retrieves a Student by ID, ignoring case.
// PRE: id is non-empty
// POST: Returns domain.ErrNotFound when absent
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Student, error) {
	st, err := ScanStudent(s.db.QueryRowContext(ctx, selectStudent+" WHERE id = ? COLLATE NOCASE", strings.TrimSpace(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, domain.ErrNotFound
	}
	return st, err
}

// FindByIdentifier resolves a card tag or student ID.
// PRE: identifier is non-empty
// POST: Returns domain.ErrNotFound when neither matches
func (s *SQLiteStore) FindByIdentifier(ctx context.Context, identifier string) (domain.Student, error) {
	id := strings.TrimSpace(identifier)
	st, err := ScanStudent(s.db.QueryRowContext(ctx,
		selectStudent+" WHERE id = ? COLLATE NOCASE OR rfid = ? COLLATE NOCASE LIMIT 1", id, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, domain.ErrNotFound
	}
	return st, err
}

// Save persists a Student.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Student) error {
	if err := entity.Validate(); err != nil {
		return err
	}
	var rfid any
	if entity.RFID != "" {
		rfid = entity.RFID
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO student (id, rfid, name, course, year, section, email)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET rfid=excluded.rfid, name=excluded.name, course=excluded.course,
			year=excluded.year, section=excluded.section, email=excluded.email`,
		entity.ID, rfid, entity.Name, entity.Course, entity.Year, entity.Section, entity.Email)
	return err
}

// List returns the directory ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := s.db.QueryContext(ctx, selectStudent+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Student
	for rows.Next() {
		st, err := ScanStudent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, rows.Err()
}
