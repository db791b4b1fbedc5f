package calendar

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	got, err := Parse(" 2024-01-15 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}

	for _, bad := range []string{"", "15/01/2024", "2024-13-01", "2024-02-30"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	birth := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		to   time.Time
		want int
	}{
		{birth, 0},
		{time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), 14},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 60},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, tc := range cases {
		if got := DaysBetween(birth, tc.to); got != tc.want {
			t.Fatalf("DaysBetween(%s) = %d, want %d", Format(tc.to), got, tc.want)
		}
	}
}
