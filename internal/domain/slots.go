package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrClosedWeekend  = errors.New("closed on weekends")
	ErrClosedDayOff   = errors.New("closed on a day off")
	ErrClosedBlackout = errors.New("closed during unavailable hours")
)

// Slot is a candidate appointment window. Never persisted.
type Slot struct {
	Start time.Time
	End   time.Time
}

// NormalizeDate parses a "YYYY-MM-DD" date string as the start of that day in
// loc. All calendar comparisons go through this so that day-off and blackout
// checks never compare instants across zones.
func NormalizeDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// EnumerateSlots generates every open slot on day under cfg. Day must be a
// normalized start-of-day in the configured zone. Weekends and configured
// days off yield no slots. Slot generation runs while the slot start is
// before the operational end, so the final slot may extend past it; that
// matches the booking window consumers already rely on and is intentional.
func EnumerateSlots(day time.Time, cfg ScheduleConfig) ([]Slot, error) {
	if cfg.SlotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", cfg.SlotDuration)
	}
	if isWeekend(day) || isDayOff(day, cfg) {
		return nil, nil
	}

	start, err := ParseTimeOfDay(cfg.OperationalStartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(cfg.OperationalEndTime)
	if err != nil {
		return nil, err
	}

	cur := start.At(day)
	endTime := end.At(day)
	duration := time.Duration(cfg.SlotDuration) * time.Minute

	var slots []Slot
	for cur.Before(endTime) {
		slotEnd := cur.Add(duration)
		if !inBlackout(cur, slotEnd, day, cfg) {
			slots = append(slots, Slot{Start: cur, End: slotEnd})
		}
		cur = slotEnd
	}
	return slots, nil
}

// CheckBookable applies the calendar rules to a single requested slot, in the
// same order the availability listing applies them: weekend, day off,
// blackout. Both paths share the helpers below so the two can never diverge.
func CheckBookable(day, start, end time.Time, cfg ScheduleConfig) error {
	if isWeekend(day) {
		return ErrClosedWeekend
	}
	if isDayOff(day, cfg) {
		return ErrClosedDayOff
	}
	if inBlackout(start, end, day, cfg) {
		return ErrClosedBlackout
	}
	return nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isDayOff(day time.Time, cfg ScheduleConfig) bool {
	for _, raw := range cfg.DaysOff {
		off, err := NormalizeDate(raw, day.Location())
		if err != nil {
			continue
		}
		if off.Equal(day) {
			return true
		}
	}
	return false
}

// inBlackout reports whether [start, end) is blocked by any configured
// blackout window anchored to day. A slot is blocked when its start falls in
// [blockStart, blockEnd) or its end falls in (blockStart, blockEnd].
// Malformed entries are skipped, matching how stored config is treated
// everywhere else.
func inBlackout(start, end, day time.Time, cfg ScheduleConfig) bool {
	for _, raw := range cfg.UnavailableHours {
		r, err := ParseHourRange(raw)
		if err != nil {
			continue
		}
		blockStart := r.Start.At(day)
		blockEnd := r.End.At(day)
		if !start.Before(blockStart) && start.Before(blockEnd) {
			return true
		}
		if end.After(blockStart) && !end.After(blockEnd) {
			return true
		}
	}
	return false
}
