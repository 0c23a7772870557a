package projections

import (
	"context"
	"sort"

	"eventdesk/internal/domain/disclosure"
	"eventdesk/internal/domain/report"
)

// Report queue sections.
const (
	SectionPending  = "pending"
	SectionPrevious = "previous"
)

// GetReportQueueQuery carries input for the report moderation projection.
type GetReportQueueQuery struct {
	Disclosure disclosure.State
}

// GetReportQueueDeps holds dependencies for the report moderation projection.
type GetReportQueueDeps struct {
	ReportStore ReportStore
}

// ReportRow is one report in either section.
type ReportRow struct {
	Report report.Report
	Open   bool
}

// ReportQueueResult carries the output of the report moderation projection.
type ReportQueueResult struct {
	Pending      []ReportRow
	Previous     []ReportRow
	PendingOpen  bool
	PreviousOpen bool
	Disclosure   disclosure.State
}

// QueryGetReportQueue splits reports into pending and decided sections.
// PRE: none
// POST: Pending keeps submission order; Previous is most recently decided first
func QueryGetReportQueue(ctx context.Context, query GetReportQueueQuery, deps GetReportQueueDeps) (ReportQueueResult, error) {
	reports, err := deps.ReportStore.List(ctx)
	if err != nil {
		return ReportQueueResult{}, err
	}

	result := ReportQueueResult{
		Pending:      []ReportRow{},
		Previous:     []ReportRow{},
		PendingOpen:  query.Disclosure.IsSectionOpen(SectionPending),
		PreviousOpen: query.Disclosure.IsSectionOpen(SectionPrevious),
		Disclosure:   query.Disclosure,
	}
	for _, r := range reports {
		row := ReportRow{Report: r, Open: query.Disclosure.IsItemOpen(r.ID)}
		if r.IsPending() {
			result.Pending = append(result.Pending, row)
		} else {
			result.Previous = append(result.Previous, row)
		}
	}
	sort.SliceStable(result.Previous, func(i, j int) bool {
		return result.Previous[i].Report.DecidedAt.After(result.Previous[j].Report.DecidedAt)
	})
	return result, nil
}
