package attendance

import (
	"context"
	"time"

	domain "eventdesk/internal/domain/attendance"
)

// Store persists attendance Records.
type Store interface {
	Save(ctx context.Context, value domain.Record) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Record, error)
	RecordScan(ctx context.Context, eventID, identifier, source string) (domain.Record, error)
	CheckIn(ctx context.Context, studentID, eventCode string, at time.Time) (domain.Record, error)
}
