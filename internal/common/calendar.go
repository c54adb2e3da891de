package common

import "time"

// DateLayout is the canonical YYYY-MM-DD date format used for storage keys
// and API parameters.
const DateLayout = "2006-01-02"

// Midnight truncates a timestamp to midnight UTC. Bars and indicator records
// are keyed by calendar date, so all dates pass through here before
// comparison or storage.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// IsTradingDay reports whether the date falls on a weekday. Market holidays
// are not modelled; a holiday simply never yields a bar, and the absence of
// data is not treated as a gap to re-fetch forever because the provider
// returns nothing for it on every sync.
func IsTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// TradingDays returns every weekday from start through end inclusive, in
// ascending order, truncated to midnight UTC. A start after end yields an
// empty slice.
func TradingDays(start, end time.Time) []time.Time {
	start = Midnight(start)
	end = Midnight(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// PreviousTradingDay returns the closest weekday strictly before the given
// date.
func PreviousTradingDay(t time.Time) time.Time {
	d := Midnight(t).AddDate(0, 0, -1)
	for !IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
