package period

import (
	"fmt"
	"time"
)

// DateLayout is the query parameter format for reporting dates
const DateLayout = "2006-01-02"

// Range is an inclusive time interval
type Range struct {
	From time.Time
	To   time.Time
}

// UTC returns the range with both bounds converted to UTC
func (r Range) UTC() Range {
	return Range{From: r.From.UTC(), To: r.To.UTC()}
}

// Day returns [startOfDay, endOfDay] of date's calendar day in loc
func Day(date time.Time, loc *time.Location) Range {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return Range{From: start, To: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}

// Month returns [startOfMonth, endOfMonth] of date's calendar month in loc
func Month(date time.Time, loc *time.Location) Range {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
	return Range{From: start, To: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// DayKey and MonthKey name the buckets used for memoized totals
func DayKey(date time.Time, loc *time.Location) string {
	return date.In(loc).Format(DateLayout)
}

func MonthKey(date time.Time, loc *time.Location) string {
	return date.In(loc).Format("2006-01")
}

// ParseDate reads a YYYY-MM-DD date in loc. An empty string means today.
func ParseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
