package utils

import "time"

// DateOf trả về ngày lịch (calendar date) của t trong loc,
// biểu diễn là 00:00 UTC để so sánh và trừ ngày chính xác
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference to - from of two calendar dates
func DaysBetween(from, to time.Time) int {
	from = DateOf(from, time.UTC)
	to = DateOf(to, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
