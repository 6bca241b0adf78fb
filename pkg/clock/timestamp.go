// Package clock supplies the once-per-second time snapshots clock faces
// are drawn from.
package clock

import (
	"fmt"
	"time"
)

// Timestamp is an immutable calendar snapshot in 12-hour form.
type Timestamp struct {
	Year int

	// Month is zero-based: 0 is January.
	Month int

	// DayOfWeek runs from 1 (Sunday) to 7 (Saturday).
	DayOfWeek int

	// Day is the day of the month, starting at 1.
	Day int

	// Hour is 0-11; 0 reads as twelve.
	Hour   int
	Minute int
	Second int
	PM     bool
}

// FromTime snapshots t in its own location.
func FromTime(t time.Time) Timestamp {
	h := t.Hour()
	return Timestamp{
		Year:      t.Year(),
		Month:     int(t.Month()) - 1,
		DayOfWeek: int(t.Weekday()) + 1,
		Day:       t.Day(),
		Hour:      h % 12,
		Minute:    t.Minute(),
		Second:    t.Second(),
		PM:        h >= 12,
	}
}

// Time converts the snapshot back to a time in loc. A nil loc means
// time.Local.
func (ts Timestamp) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	h := ts.Hour
	if ts.PM {
		h += 12
	}
	return time.Date(ts.Year, time.Month(ts.Month+1), ts.Day, h, ts.Minute, ts.Second, 0, loc)
}

// DisplayHour returns the hour as printed on a 12-hour clock, 1-12.
func (ts Timestamp) DisplayHour() int {
	if ts.Hour == 0 {
		return 12
	}
	return ts.Hour
}

// Weekday returns the day of week as a time.Weekday.
func (ts Timestamp) Weekday() time.Weekday {
	return time.Weekday(ts.DayOfWeek - 1)
}

func (ts Timestamp) String() string {
	suffix := "AM"
	if ts.PM {
		suffix = "PM"
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s",
		ts.Year, ts.Month+1, ts.Day, ts.DisplayHour(), ts.Minute, ts.Second, suffix)
}
