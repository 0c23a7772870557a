package apiclient

import (
	"context"
	"net/http"

	"eventdesk/internal/domain/eventrequest"
)

// Requests covers event request submission.
type Requests struct {
	c *Client
}

// Submit posts POST /api/events/request and returns the request as sent.
// The response body is ignored apart from its status.
func (r *Requests) Submit(ctx context.Context, value eventrequest.Request) (eventrequest.Request, error) {
	body := struct {
		Title       string `json:"eventTitle"`
		DateStart   string `json:"dateStart"`
		TimeStart   string `json:"timeStart"`
		DateEnd     string `json:"dateEnd"`
		TimeEnd     string `json:"timeEnd"`
		Description string `json:"description"`
	}{value.Title, value.DateStart, value.TimeStart, value.DateEnd, value.TimeEnd, value.Description}
	if err := r.c.do(ctx, http.MethodPost, "/api/events/request", nil, body, nil, nil); err != nil {
		return eventrequest.Request{}, err
	}
	return value, nil
}
