package dates

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestClockRef(t *testing.T) {
	loc := kyiv(t)
	// 22:30 UTC on 31 Dec is already 1 Jan in Kyiv.
	now := time.Date(2025, 12, 31, 22, 30, 0, 0, time.UTC)
	c := NewClock(loc).WithNow(func() time.Time { return now })

	got := c.Ref()
	want := Ref{
		TodayDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, loc),
		Today:       "01.01.2026",
		Tomorrow:    "02.01.2026",
		InThreeDays: "04.01.2026",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ref() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("01.01.2026", c.Today()); diff != "" {
		t.Errorf("Today() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("28.02.2026", c.FromNow(58)); diff != "" {
		t.Errorf("FromNow(58) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{name: "two digit", in: "05.03.2026", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "single digit", in: "5.3.2026", want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "padded", in: "  19.10.2026 ", want: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), wantOK: true},
		{name: "empty", in: ""},
		{name: "iso", in: "2026-10-19"},
		{name: "invalid day", in: "32.01.2026"},
		{name: "text", in: "завтра"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if diff := cmp.Diff(tt.wantOK, ok); diff != "" {
				t.Fatalf("ok mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestDayDelta(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{name: "same day", a: day(2026, 10, 19), b: day(2026, 10, 19), want: 0},
		{name: "ten days later", a: day(2026, 10, 19), b: day(2026, 10, 9), want: 10},
		{name: "earlier is negative", a: day(2026, 10, 19), b: day(2026, 10, 22), want: -3},
		{name: "across month", a: day(2026, 3, 1), b: day(2026, 2, 27), want: 2},
		{name: "time of day ignored", a: time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC), b: day(2026, 10, 20), want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DayDelta(tt.a, tt.b)); diff != "" {
				t.Errorf("DayDelta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDayDeltaAcrossZones(t *testing.T) {
	loc := kyiv(t)
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	planned, _ := Parse("18.10.2026")
	if diff := cmp.Diff(1, DayDelta(today, planned)); diff != "" {
		t.Errorf("DayDelta mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "09:30", want: 570},
		{in: "9:05", want: 545},
		{in: " 23:59 ", want: 1439},
		{in: "00:00", want: 0},
		{in: "", want: NoTime},
		{in: "24:00", want: NoTime},
		{in: "12:60", want: NoTime},
		{in: "12:5", want: NoTime},
		{in: "noon", want: NoTime},
		{in: "123:00", want: NoTime},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, TimeToMinutes(tt.in)); diff != "" {
				t.Errorf("TimeToMinutes(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
