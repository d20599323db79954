package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, parsed from "HH:mm".
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// At anchors the time of day to the calendar day of t, in t's location.
func (td TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), td.Hour, td.Minute, 0, 0, day.Location())
}

func (td TimeOfDay) Before(other TimeOfDay) bool {
	if td.Hour != other.Hour {
		return td.Hour < other.Hour
	}
	return td.Minute < other.Minute
}

func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", td.Hour, td.Minute)
}

// HourRange is a daily-recurring time-of-day interval, parsed from "HH:mm-HH:mm".
type HourRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func ParseHourRange(s string) (HourRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return HourRange{}, fmt.Errorf("invalid hour range %q", s)
	}
	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return HourRange{}, err
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return HourRange{}, err
	}
	return HourRange{Start: start, End: end}, nil
}

func (r HourRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}
