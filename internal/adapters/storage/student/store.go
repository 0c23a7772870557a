package student

import (
	"context"

	domain "eventdesk/internal/domain/student"
)

// Store persists Student directory entries.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Student, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.Student, error)
	Save(ctx context.Context, value domain.Student) error
	List(ctx context.Context) ([]domain.Student, error)
}
