package apiclient

import (
	"context"
	"net/http"

	"eventdesk/internal/domain/student"
)

// Students covers student lookups.
type Students struct {
	c *Client
}

// GetByID confirms a student through POST /api/auth/student-login.
// POST: Returns student.ErrNotFound (wrapped) for 401/404 responses
func (s *Students) GetByID(ctx context.Context, id string) (student.Student, error) {
	body := struct {
		StudentID string `json:"studentId"`
	}{StudentID: id}
	var out struct {
		Student student.Student `json:"student"`
	}
	err := s.c.do(ctx, http.MethodPost, "/api/auth/student-login", nil, body, &out, statusErrors{
		http.StatusNotFound:     student.ErrNotFound,
		http.StatusUnauthorized: student.ErrNotFound,
	})
	if err != nil {
		return student.Student{}, err
	}
	return out.Student, nil
}
