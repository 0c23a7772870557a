package projections

import (
	"context"
	"errors"
	"log/slog"

	"eventdesk/internal/domain/event"
)

// GetAdminDashboardQuery carries input for the admin dashboard projection.
type GetAdminDashboardQuery struct{}

// GetAdminDashboardDeps holds dependencies for the admin dashboard projection.
type GetAdminDashboardDeps struct {
	EventStore EventStore
}

// AdminDashboardResult carries the output of the admin dashboard projection.
// HasCurrent is false when no event is ongoing; Current and Charts are then zero.
type AdminDashboardResult struct {
	HasCurrent bool
	Current    event.Event
	Charts     EventCharts
	Upcoming   []event.Event
}

// QueryGetAdminDashboard builds the ongoing event overview and the upcoming list.
// PRE: none
// POST: Upcoming is never nil
func QueryGetAdminDashboard(ctx context.Context, _ GetAdminDashboardQuery, deps GetAdminDashboardDeps) (AdminDashboardResult, error) {
	var result AdminDashboardResult

	current, err := deps.EventStore.GetCurrent(ctx)
	switch {
	case err == nil:
		result.HasCurrent = true
		result.Current = current
		result.Charts = buildCharts(current)
		if !current.Stats.Consistent() {
			slog.Warn("dashboard_event", "event", "stored_rate_mismatch", "event_id", current.ID,
				"stored", current.Stats.RatePercent, "computed", current.Stats.ComputedRate())
		}
	case errors.Is(err, event.ErrNoCurrent):
	default:
		return AdminDashboardResult{}, err
	}

	upcoming, err := deps.EventStore.ListUpcoming(ctx)
	if err != nil {
		return AdminDashboardResult{}, err
	}
	if upcoming == nil {
		upcoming = []event.Event{}
	}
	result.Upcoming = upcoming
	return result, nil
}
