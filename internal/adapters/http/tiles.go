package web

import (
	"fmt"
	"strconv"

	"eventdesk/internal/domain/attendance"
	"eventdesk/internal/domain/event"
)

// Tile icons and colours understood by the statcard partial.
const (
	iconStudents = "students"
	iconAttended = "attended"
	iconRate     = "rate"

	colorRed   = "red"
	colorBlue  = "blue"
	colorGreen = "green"
)

// Tile is a stat card: a label, a value and an icon. It has no state.
type Tile struct {
	Title string
	Value string
	Icon  string
	Color string
}

// eventTiles shows the stored stats as delivered; the rate is not recomputed.
func eventTiles(s event.Stats) []Tile {
	return []Tile{
		{Title: "Total Department Students", Value: strconv.Itoa(s.TotalEligible), Icon: iconStudents, Color: colorRed},
		{Title: "Total Students Attended", Value: strconv.Itoa(s.Attended), Icon: iconAttended, Color: colorBlue},
		{Title: "Attendance Rate", Value: fmt.Sprintf("%d%%", s.RatePercent), Icon: iconRate, Color: colorGreen},
	}
}

// studentRateTiles is the dashboard variant with on-time and late rates.
func studentRateTiles(s attendance.Summary) []Tile {
	return []Tile{
		{Title: "Total Number of Events", Value: strconv.Itoa(s.TotalEvents), Icon: iconStudents, Color: colorRed},
		{Title: "On Time Attendance Rate", Value: fmt.Sprintf("%.0f%%", s.OnTimeRate), Icon: iconAttended, Color: colorBlue},
		{Title: "Late Attendance Rate", Value: fmt.Sprintf("%.0f%%", s.LateRate), Icon: iconRate, Color: colorGreen},
	}
}

// studentCountTiles is the attendance page variant with raw counts.
func studentCountTiles(s attendance.Summary) []Tile {
	return []Tile{
		{Title: "Total Number of Events", Value: strconv.Itoa(s.TotalEvents), Icon: iconStudents, Color: colorRed},
		{Title: "On Time Attendance", Value: strconv.Itoa(s.OnTime), Icon: iconAttended, Color: colorBlue},
		{Title: "Late Attendance", Value: strconv.Itoa(s.Late), Icon: iconRate, Color: colorGreen},
	}
}
