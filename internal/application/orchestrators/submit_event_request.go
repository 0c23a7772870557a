package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"eventdesk/internal/application/placeholder"
	"eventdesk/internal/domain/eventrequest"
	"eventdesk/internal/domain/form"
)

// MsgEventRequestSubmitted is the alert shown after a successful event request.
const MsgEventRequestSubmitted = "Event request submitted successfully!"

// SubmitEventRequestInput carries input for the event request orchestrator.
// Request is reset in place on success so the caller re-renders an empty form.
type SubmitEventRequestInput struct {
	Request *eventrequest.Request
	State   *form.State
}

// SubmitEventRequestDeps holds dependencies for SubmitEventRequest.
type SubmitEventRequestDeps struct {
	Requests   EventRequestSubmitter
	GenerateID func() string
	Now        func() time.Time
	Delay      time.Duration
}

// ExecuteSubmitEventRequest validates and submits a proposed event.
// PRE: Request and State are non-nil
// POST: on validation failure returns *ValidationError and nothing is submitted
// POST: otherwise State has left the submitting state with an alert; Request is reset only on success
func ExecuteSubmitEventRequest(ctx context.Context, input SubmitEventRequestInput, deps SubmitEventRequestDeps) (eventrequest.Request, error) {
	if errs := input.Request.Validate(); errs.Any() {
		return eventrequest.Request{}, invalid(errs)
	}
	if err := input.State.Begin(); err != nil {
		return eventrequest.Request{}, err
	}

	req := *input.Request
	req.ID = deps.GenerateID()
	req.SubmittedAt = deps.Now()
	slog.Info("request_event", "event", "event_request_submitting", "request_id", req.ID, "title", req.Title)

	var saved eventrequest.Request
	callCtx := context.WithoutCancel(ctx)
	task := placeholder.Start(deps.Delay, func() error {
		var err error
		saved, err = deps.Requests.Submit(callCtx, req)
		return err
	}, func(err error) {
		if err != nil {
			slog.Error("request_event", "event", "event_request_failed", "request_id", req.ID, "error", err)
			input.State.Finish(AlertFor(err), err)
			return
		}
		input.Request.Reset()
		input.State.Finish(MsgEventRequestSubmitted, nil)
	})
	if err := task.Wait(); err != nil {
		return eventrequest.Request{}, err
	}

	slog.Info("request_event", "event", "event_request_submitted", "request_id", saved.ID)
	return saved, nil
}
