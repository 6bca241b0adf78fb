package face

import (
	"testing"

	"github.com/go-drift/clockface/pkg/clock"
)

func TestHourToIndex(t *testing.T) {
	tests := []struct{ hour, want int }{
		{0, 0}, {12, 0}, {1, 5}, {3, 15}, {11, 55},
	}
	for _, tt := range tests {
		if got := HourToIndex(tt.hour); got != tt.want {
			t.Errorf("HourToIndex(%d) = %d, want %d", tt.hour, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		h, m, s int
		pm      bool
		want    string
	}{
		{9, 5, 0, false, " 9:05:00 AM"},
		{12, 0, 0, true, "12:00:00 PM"},
		{0, 0, 0, false, "12:00:00 AM"},
		{11, 59, 59, true, "11:59:59 PM"},
	}
	for _, tt := range tests {
		got := FormatTime(tt.h, tt.m, tt.s, tt.pm)
		if got != tt.want {
			t.Errorf("FormatTime(%d, %d, %d, %v) = %q, want %q", tt.h, tt.m, tt.s, tt.pm, got, tt.want)
		}
		if len(got) != timeChars {
			t.Errorf("FormatTime length = %d, want %d", len(got), timeChars)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(2024, 0, 1, 2); got != "Monday January 1, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
	ts := clock.Timestamp{Year: 2023, Month: 11, Day: 25, DayOfWeek: 2}
	if got := DateString(ts); got != "Monday December 25, 2023" {
		t.Errorf("DateString = %q", got)
	}
}

func TestCenteredLeftAndProportion(t *testing.T) {
	if got := CenteredLeft(250, 100); got != 200 {
		t.Errorf("CenteredLeft = %v", got)
	}
	if got := Proportion(335, 170, -0.40); got != 267 {
		t.Errorf("Proportion = %v", got)
	}
}
