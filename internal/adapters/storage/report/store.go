package report

import (
	"context"
	"time"

	domain "eventdesk/internal/domain/report"
)

// Store persists discrepancy Reports and their attachment references.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Report, error)
	Save(ctx context.Context, value domain.Report) error
	List(ctx context.Context) ([]domain.Report, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Report, error)
	Submit(ctx context.Context, value domain.Report) (domain.Report, error)
	Decide(ctx context.Context, id, status string, at time.Time) (domain.Report, error)
}
