package chart

import "errors"

// Circumference is the stroke length of the donut ring (2·π·80, as drawn in the SVG).
const Circumference = 502.4

// BarScale is the pixel height of one unit in the grouped bar chart.
const BarScale = 3.0

// Domain errors
var (
	ErrZeroTotal     = errors.New("distribution total must be greater than zero")
	ErrNegativeValue = errors.New("distribution values cannot be negative")
)

// Entry is one category of a proportional distribution.
type Entry struct {
	Category string  `json:"course"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
}

// Segment is the stroke geometry of one Entry on the donut ring.
type Segment struct {
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Length   float64 `json:"length"`
	Offset   float64 `json:"offset"`
	Percent  float64 `json:"percent"`
}

// Group is a pair of values plotted side by side under one label (e.g. a year level).
type Group struct {
	Label string  `json:"year"`
	A     float64 `json:"courseA"`
	B     float64 `json:"courseB"`
}

// BarGroup is the pixel geometry of a Group.
type BarGroup struct {
	Label   string  `json:"label"`
	A       float64 `json:"a"`
	B       float64 `json:"b"`
	AHeight float64 `json:"aHeight"`
	BHeight float64 `json:"bHeight"`
}

// Total returns the sum of all entry values.
func Total(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Value
	}
	return total
}

// Donut computes ring segments for entries.
// PRE: entries are ordered as they should be drawn
// POST: Length is proportional to value/total against circumference;
// Offset is the negated sum of all preceding lengths
// INVARIANT: lengths sum to circumference when total > 0
func Donut(entries []Entry, circumference float64) ([]Segment, error) {
	for _, e := range entries {
		if e.Value < 0 {
			return nil, ErrNegativeValue
		}
	}
	total := Total(entries)
	if total <= 0 {
		return nil, ErrZeroTotal
	}

	segments := make([]Segment, 0, len(entries))
	var drawn float64
	for _, e := range entries {
		share := e.Value / total
		length := share * circumference
		segments = append(segments, Segment{
			Category: e.Category,
			Color:    e.Color,
			Length:   length,
			Offset:   -drawn,
			Percent:  share * 100,
		})
		drawn += length
	}
	return segments, nil
}

// Bars computes pixel heights for grouped bars.
// PRE: scale > 0
// POST: heights are value*scale; negative values are drawn as zero height
func Bars(groups []Group, scale float64) []BarGroup {
	bars := make([]BarGroup, 0, len(groups))
	for _, g := range groups {
		bars = append(bars, BarGroup{
			Label:   g.Label,
			A:       g.A,
			B:       g.B,
			AHeight: max(g.A, 0) * scale,
			BHeight: max(g.B, 0) * scale,
		})
	}
	return bars
}
