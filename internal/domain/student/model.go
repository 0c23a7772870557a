package student

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrNotFound  = errors.New("student not found")
	ErrEmptyID   = errors.New("student ID cannot be empty")
	ErrEmptyName = errors.New("student name cannot be empty")
	ErrBadYear   = errors.New("year level must be between 1 and 5")
)

// Student is a directory entry used to resolve scans and address notices.
type Student struct {
	ID      string `json:"studentId"`
	RFID    string `json:"rfid,omitempty"`
	Name    string `json:"name"`
	Course  string `json:"course"`
	Year    int    `json:"year"`
	Section string `json:"section"`
	Email   string `json:"email,omitempty"`
}

// Validate checks if the Student has valid data.
// PRE: Student struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Year < 1 || s.Year > 5 {
		return ErrBadYear
	}
	return nil
}

// YearSection renders the "3B" style label shown next to a course.
func (s Student) YearSection() string {
	return fmt.Sprintf("%d%s", s.Year, s.Section)
}

// Matches reports whether identifier is this student's card tag or ID.
func (s Student) Matches(identifier string) bool {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return false
	}
	return strings.EqualFold(id, s.ID) || (s.RFID != "" && strings.EqualFold(id, s.RFID))
}
