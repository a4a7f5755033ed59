// Package dates provides the calendar helpers used to populate date pickers,
// compute trip durations and render summaries. All dates are civil dates in
// ISO form ("2006-01-02"), interpreted in UTC.
package dates

import (
	"fmt"
	"iter"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	// ISO is the storage and wire form of a calendar date.
	ISO = "2006-01-02"

	// Timestamp is the form of a trip's created timestamp.
	Timestamp = "2006-01-02 15:04"

	// displayLayout renders e.g. "June 01, 2024 (Saturday)".
	displayLayout = "January 02, 2006 (Monday)"
)

// Parse parses an ISO date.
func Parse(s string) (time.Time, error) {
	return time.Parse(ISO, s)
}

// Format renders t as an ISO date. The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISO)
}

// FormatDisplay converts an ISO date into a long human form with month name,
// day, year and weekday. Input that does not parse is returned unchanged.
func FormatDisplay(s string) string {
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}

// DateRange yields every ISO date from start to end inclusive, ascending.
// The sequence is empty when either bound fails to parse or end is before start.
func DateRange(start, end string) iter.Seq[string] {
	return func(yield func(string) bool) {
		from, err := Parse(start)
		if err != nil {
			return
		}
		to, err := Parse(end)
		if err != nil {
			return
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(ISO)) {
				return
			}
		}
	}
}

// Days collects DateRange into a slice. It never returns nil.
func Days(start, end string) []string {
	out := []string{}
	for d := range DateRange(start, end) {
		out = append(out, d)
	}
	return out
}

// Option is one entry of a date picker: the ISO value and its display label.
type Option struct {
	Date    string
	Display string
}

// Options lists DateRange as picker entries. It never returns nil.
func Options(start, end string) []Option {
	out := []Option{}
	for d := range DateRange(start, end) {
		out = append(out, Option{Date: d, Display: FormatDisplay(d)})
	}
	return out
}

// Duration returns the number of calendar days from start to end, counting
// both endpoints. It fails with domain.ErrValidation when end is before start.
func Duration(start, end time.Time) (int, error) {
	s, e := civil(start), civil(end)
	if e.Before(s) {
		return 0, fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return int((e.Unix()-s.Unix())/86400) + 1, nil
}

// Within reports whether d falls on a day between start and end inclusive.
func Within(d, start, end time.Time) bool {
	c := civil(d)
	return !c.Before(civil(start)) && !c.After(civil(end))
}

// Stamp truncates t to the minute and keeps its wall-clock reading in UTC,
// which is how created timestamps are stored and read back.
func Stamp(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// civil strips the clock and location from t, keeping its calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
