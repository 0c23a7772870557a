package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"eventdesk/internal/domain/form"
	"eventdesk/internal/domain/student"
)

// MsgStudentLoggedIn is the alert shown after the student ID is confirmed.
const MsgStudentLoggedIn = "Student login successful!"

// StudentLoginInput carries input for the student login placeholder.
type StudentLoginInput struct {
	StudentID  string `form:"studentId" label:"Student ID" validate:"notblank"`
	RememberMe bool   `form:"rememberMe"`
}

// StudentLoginDeps holds dependencies for StudentLogin.
type StudentLoginDeps struct {
	Students StudentDirectory
}

// ExecuteStudentLogin confirms that the student ID exists. No session is created.
// PRE: none
// POST: a blank ID returns *ValidationError; an unknown ID returns student.ErrNotFound
func ExecuteStudentLogin(ctx context.Context, input StudentLoginInput, deps StudentLoginDeps) (student.Student, error) {
	if errs := form.Check(&input); errs.Any() {
		return student.Student{}, invalid(errs)
	}
	id := strings.TrimSpace(input.StudentID)

	s, err := deps.Students.GetByID(ctx, id)
	if err != nil {
		slog.Warn("auth_event", "event", "student_login_failed", "student_id", id, "error", err)
		return student.Student{}, err
	}

	slog.Info("auth_event", "event", "student_login", "student_id", s.ID, "remember_me", input.RememberMe)
	return s, nil
}
