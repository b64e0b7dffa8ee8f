package repository

import "time"

// MonthBounds returns the first and last day of a calendar month (UTC).
// Day 0 of the following month normalizes to the last day of this one, which
// handles 28/29/30/31-day months and leap years.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}
