package face

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/clockface/pkg/clock"
)

// Ticks is the number of minute positions on the dial.
const Ticks = 60

// Numerals are the dial labels, starting at the top and running clockwise.
var Numerals = [12]string{"XII", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI"}

// HourToIndex maps a 12-hour value onto the 60-position dial. Twelve and
// zero both land on index 0.
func HourToIndex(hour int) int {
	return (hour * 5) % Ticks
}

// TickAngle returns the angle of dial position i in radians, measured
// counter-clockwise from the positive x axis. Position 0 points up.
func TickAngle(i int) float64 {
	return math.Pi/2 - float64(i)*(2*math.Pi/Ticks)
}

// FormatDate renders "<Weekday> <Month> <Day>, <Year>". month is
// zero-based and dayOfWeek runs from 1 (Sunday) to 7.
func FormatDate(year, month, day, dayOfWeek int) string {
	return fmt.Sprintf("%s %s %d, %d", time.Weekday(dayOfWeek-1), time.Month(month+1), day, year)
}

// FormatTime renders an 11-character "HH:MM:SS AM" string. Hours below ten
// are space padded and hour 0 prints as 12.
func FormatTime(hour, minute, second int, pm bool) string {
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if pm {
		suffix = "PM"
	}
	return fmt.Sprintf("%2d:%02d:%02d %s", hour, minute, second, suffix)
}

// DateString formats the date part of ts.
func DateString(ts clock.Timestamp) string {
	return FormatDate(ts.Year, ts.Month, ts.Day, ts.DayOfWeek)
}

// TimeString formats the time part of ts.
func TimeString(ts clock.Timestamp) string {
	return FormatTime(ts.Hour, ts.Minute, ts.Second, ts.PM)
}

// CenteredLeft returns the left edge that centers a run of text of the
// given width on x.
func CenteredLeft(x, width float64) float64 {
	return x - width/2
}

// Proportion returns round(origin + length*fraction).
func Proportion(origin, length, fraction float64) float64 {
	return math.Round(origin + length*fraction)
}
