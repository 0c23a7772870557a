package eventrequest

import (
	"context"

	domain "eventdesk/internal/domain/eventrequest"
)

// Store persists submitted event Requests.
type Store interface {
	Submit(ctx context.Context, value domain.Request) (domain.Request, error)
	List(ctx context.Context) ([]domain.Request, error)
}
