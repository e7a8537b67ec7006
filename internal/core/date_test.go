package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(NewDate(2024, time.February, 29)) {
		t.Fatalf("unexpected date %s", d)
	}

	for _, bad := range []string{"", "29-02-2024", "2024-13-01", "tomorrow"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseDate(%q): expected validation error, got %v", bad, err)
		}
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	d := DateOf(time.Date(2024, time.June, 3, 23, 59, 0, 0, loc))
	if d.String() != "2024-06-03" {
		t.Fatalf("expected 2024-06-03, got %s", d)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("expected UTC midnight, got %v", d.Time)
	}
}

func TestDaysBetween(t *testing.T) {
	a := NewDate(2024, time.February, 27)
	cases := []struct {
		b    Date
		want int
	}{
		{a, 0},
		{NewDate(2024, time.March, 1), 3},
		{NewDate(2024, time.February, 20), -7},
	}
	for _, tc := range cases {
		if got := DaysBetween(a, tc.b); got != tc.want {
			t.Fatalf("DaysBetween(%s, %s) = %d, want %d", a, tc.b, got, tc.want)
		}
	}
}

func TestDaysBetweenDistantDates(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	end := NewDate(9999, time.December, 31)

	if got := DaysBetween(start, end); got != 2913173 {
		t.Fatalf("DaysBetween(%s, %s) = %d, want 2913173", start, end, got)
	}
	if got := DaysBetween(end, start); got != -2913173 {
		t.Fatalf("DaysBetween(%s, %s) = %d, want -2913173", end, start, got)
	}
}

func TestOptional(t *testing.T) {
	var empty Optional[int]
	if empty.IsSome() {
		t.Fatalf("zero Optional should be empty")
	}
	if got := empty.OrElse(4); got != 4 {
		t.Fatalf("OrElse on empty returned %d", got)
	}
	v, ok := Some(9).Get()
	if !ok || v != 9 {
		t.Fatalf("Some(9).Get() = %d, %v", v, ok)
	}
	if None[string]().IsSome() {
		t.Fatalf("None should be empty")
	}
}
