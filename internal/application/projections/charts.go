package projections

import (
	"errors"
	"log/slog"

	"eventdesk/internal/domain/chart"
	"eventdesk/internal/domain/event"
)

// DonutView is a ready-to-draw course distribution.
// Empty is set when there is nothing to draw; Segments is then nil.
type DonutView struct {
	Circumference float64
	Segments      []chart.Segment
	Empty         bool
}

// BarsView is a ready-to-draw year/course comparison.
type BarsView struct {
	Groups []chart.BarGroup
	Empty  bool
}

// EventCharts bundles both charts for one event.
type EventCharts struct {
	Donut DonutView
	Bars  BarsView
}

// buildCharts derives chart geometry for e.
// Distributions that cannot be drawn render as an empty chart instead of failing the page.
func buildCharts(e event.Event) EventCharts {
	donut := DonutView{Circumference: chart.Circumference}
	segs, err := chart.Donut(e.Courses, chart.Circumference)
	if err != nil {
		if !errors.Is(err, chart.ErrZeroTotal) {
			slog.Warn("chart_event", "event", "distribution_rejected", "event_id", e.ID, "error", err)
		}
		donut.Empty = true
	} else {
		donut.Segments = segs
	}

	bars := BarsView{Groups: chart.Bars(e.YearCourses, chart.BarScale)}
	bars.Empty = len(bars.Groups) == 0
	return EventCharts{Donut: donut, Bars: bars}
}
