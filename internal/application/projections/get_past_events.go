package projections

import (
	"context"

	"eventdesk/internal/domain/disclosure"
	"eventdesk/internal/domain/event"
)

// GetPastEventsQuery carries input for the past events projection.
type GetPastEventsQuery struct {
	Disclosure disclosure.State
}

// GetPastEventsDeps holds dependencies for the past events projection.
type GetPastEventsDeps struct {
	EventStore EventStore
}

// PastEventRow is one accordion row. Charts are only built for the open row.
type PastEventRow struct {
	Event  event.Event
	Open   bool
	Charts EventCharts
}

// PastEventsResult carries the output of the past events projection.
type PastEventsResult struct {
	Rows       []PastEventRow
	Disclosure disclosure.State
}

// QueryGetPastEvents lists finished events as an accordion with at most one row open.
// PRE: none
// POST: exactly the row whose ID equals the open section has Open set
func QueryGetPastEvents(ctx context.Context, query GetPastEventsQuery, deps GetPastEventsDeps) (PastEventsResult, error) {
	events, err := deps.EventStore.ListPast(ctx)
	if err != nil {
		return PastEventsResult{}, err
	}

	rows := make([]PastEventRow, 0, len(events))
	for _, e := range events {
		row := PastEventRow{Event: e, Open: query.Disclosure.IsSectionOpen(e.ID)}
		if row.Open {
			row.Charts = buildCharts(e)
		}
		rows = append(rows, row)
	}
	return PastEventsResult{Rows: rows, Disclosure: query.Disclosure}, nil
}
