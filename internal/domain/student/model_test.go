package student_test

import (
	"errors"
	"testing"

	"eventdesk/internal/domain/student"
)

// TestStudent_Validate tests validation of Student.
func TestStudent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		s       student.Student
		wantErr error
	}{
		{name: "valid", s: student.Student{ID: "2023M1025", Name: "Zuriel Eliazar D. Calix", Year: 3}},
		{name: "blank id", s: student.Student{ID: " ", Name: "X", Year: 1}, wantErr: student.ErrEmptyID},
		{name: "blank name", s: student.Student{ID: "1", Year: 1}, wantErr: student.ErrEmptyName},
		{name: "year zero", s: student.Student{ID: "1", Name: "X"}, wantErr: student.ErrBadYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestStudent_Matches tests scan identifier resolution.
func TestStudent_Matches(t *testing.T) {
	s := student.Student{ID: "2023M1025", RFID: "0004521987", Year: 3, Section: "B"}

	tests := []struct {
		identifier string
		want       bool
	}{
		{identifier: "2023M1025", want: true},
		{identifier: "2023m1025", want: true},
		{identifier: " 0004521987 ", want: true},
		{identifier: "", want: false},
		{identifier: "9999", want: false},
	}
	for _, tt := range tests {
		if got := s.Matches(tt.identifier); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.identifier, got, tt.want)
		}
	}
	if s.YearSection() != "3B" {
		t.Errorf("YearSection() = %q", s.YearSection())
	}
}
