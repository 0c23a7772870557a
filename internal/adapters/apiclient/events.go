package apiclient

import (
	"context"
	"net/http"

	"eventdesk/internal/domain/event"
)

// Events covers the dashboard and event listing endpoints.
type Events struct {
	c *Client
}

// GetCurrent returns the ongoing event from GET /api/dashboard.
// POST: Returns event.ErrNoCurrent when the backend reports none
func (e *Events) GetCurrent(ctx context.Context) (event.Event, error) {
	var out struct {
		CurrentEvent *event.Event `json:"currentEvent"`
	}
	if err := e.c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &out, statusErrors{http.StatusNotFound: event.ErrNoCurrent}); err != nil {
		return event.Event{}, err
	}
	if out.CurrentEvent == nil {
		return event.Event{}, event.ErrNoCurrent
	}
	return *out.CurrentEvent, nil
}

// ListUpcoming returns GET /api/events/upcoming.
func (e *Events) ListUpcoming(ctx context.Context) ([]event.Event, error) {
	return e.list(ctx, "/api/events/upcoming")
}

// ListPast returns GET /api/events/past.
func (e *Events) ListPast(ctx context.Context) ([]event.Event, error) {
	return e.list(ctx, "/api/events/past")
}

func (e *Events) list(ctx context.Context, path string) ([]event.Event, error) {
	var out struct {
		Events []event.Event `json:"events"`
	}
	if err := e.c.do(ctx, http.MethodGet, path, nil, nil, &out, nil); err != nil {
		return nil, err
	}
	return out.Events, nil
}
