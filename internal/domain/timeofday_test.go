package domain

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	td, err := ParseTimeOfDay("09:05")
	if err != nil {
		t.Fatalf("ParseTimeOfDay error: %v", err)
	}
	if td.Hour != 9 || td.Minute != 5 {
		t.Fatalf("td = %+v, want 09:05", td)
	}
	if td.String() != "09:05" {
		t.Fatalf("String() = %q, want %q", td.String(), "09:05")
	}

	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("ParseTimeOfDay(%q) succeeded, want error", bad)
		}
	}
}

func TestTimeOfDayAt(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation error: %v", err)
	}
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, loc)

	got := (TimeOfDay{Hour: 14, Minute: 30}).At(day)
	want := time.Date(2026, 3, 3, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("At = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Fatalf("location = %v, want %v", got.Location(), loc)
	}
}

func TestParseHourRange(t *testing.T) {
	r, err := ParseHourRange("09:30-10:00")
	if err != nil {
		t.Fatalf("ParseHourRange error: %v", err)
	}
	if r.Start.String() != "09:30" || r.End.String() != "10:00" {
		t.Fatalf("r = %+v, want 09:30-10:00", r)
	}

	for _, bad := range []string{"", "09:30", "09:30-", "09:30-25:00"} {
		if _, err := ParseHourRange(bad); err == nil {
			t.Fatalf("ParseHourRange(%q) succeeded, want error", bad)
		}
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	a := TimeOfDay{Hour: 9, Minute: 0}
	b := TimeOfDay{Hour: 9, Minute: 30}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("Before ordering broken for %v and %v", a, b)
	}
}
