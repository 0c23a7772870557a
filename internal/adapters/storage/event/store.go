package event

import (
	"context"

	domain "eventdesk/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	GetByCode(ctx context.Context, code string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	List(ctx context.Context) ([]domain.Event, error)
	GetCurrent(ctx context.Context) (domain.Event, error)
	ListUpcoming(ctx context.Context) ([]domain.Event, error)
	ListPast(ctx context.Context) ([]domain.Event, error)
}
