package calendar

import "time"

// Day is one cell of a month grid. Nil-date cells pad the first week so the
// grid aligns on Sunday columns.
type Day struct {
	Date *time.Time `json:"date"`
}

// MonthGrid returns a linear matrix for the given month: leading empty cells
// up to the weekday of the 1st, then one cell per day. Suitable for a
// seven-column calendar rendering.
func MonthGrid(year int, month time.Month, loc *time.Location) []Day {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]Day, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, Day{})
	}
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		grid = append(grid, Day{Date: &date})
	}

	return grid
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// LocalDate formats t as a YYYY-MM-DD calendar date in its own location.
// Formatting in local time matters: converting to UTC first can roll the
// date across midnight in non-UTC zones.
func LocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}
