package event

import (
	"errors"
	"math"
	"time"

	"eventdesk/internal/domain/chart"
)

// Phase constants
const (
	PhaseUpcoming = "upcoming"
	PhaseOngoing  = "ongoing"
	PhasePast     = "past"
)

// DisplayDateLayout is how event dates are shown on every screen.
const DisplayDateLayout = "January 2, 2006"

// Domain errors
var (
	ErrNotFound     = errors.New("event not found")
	ErrNoCurrent    = errors.New("no ongoing event")
	ErrInvalidPhase = errors.New("invalid event phase")
)

// Stats are the aggregate attendance numbers of an event.
// RatePercent is stored as delivered by the backend and is not recomputed.
type Stats struct {
	TotalEligible int `json:"totalDepartmentStudents"`
	Attended      int `json:"totalStudentsAttended"`
	RatePercent   int `json:"attendanceRate"`
}

// ComputedRate returns attended/total as a percentage, or 0 when total is 0.
func (s Stats) ComputedRate() float64 {
	if s.TotalEligible <= 0 {
		return 0
	}
	return float64(s.Attended) / float64(s.TotalEligible) * 100
}

// Consistent reports whether the stored rate matches the computed rate to the nearest percent.
func (s Stats) Consistent() bool {
	return int(math.Round(s.ComputedRate())) == s.RatePercent
}

// Event holds state for the concept.
type Event struct {
	ID           string        `json:"id"`
	Code         string        `json:"code,omitempty"`
	Name         string        `json:"name"`
	StartsAt     time.Time     `json:"startsAt"`
	Phase        string        `json:"phase"`
	Stats        Stats         `json:"stats"`
	Participants int           `json:"participants"`
	Courses      []chart.Entry `json:"courseDistribution,omitempty"`
	YearCourses  []chart.Group `json:"yearCourseDistribution,omitempty"`
}

// Validate checks if the Event has valid data.
// PRE: Event struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e *Event) Validate() error {
	if e.Name == "" {
		return errors.New("event name cannot be empty")
	}
	if e.StartsAt.IsZero() {
		return errors.New("event start must be set")
	}
	switch e.Phase {
	case PhaseUpcoming, PhaseOngoing, PhasePast:
	default:
		return ErrInvalidPhase
	}
	if e.Stats.Attended < 0 || e.Stats.TotalEligible < 0 {
		return errors.New("event stats cannot be negative")
	}
	return nil
}

// DisplayDate formats the start date the way the screens show it.
func (e Event) DisplayDate() string {
	return e.StartsAt.Format(DisplayDateLayout)
}
