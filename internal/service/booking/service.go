package booking

import (
	"context"
	"strings"
	"time"

	"bookwise/backend/internal/domain"
	"bookwise/backend/internal/store"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

type Service struct {
	appointments store.AppointmentRepository
	configs      store.ScheduleConfigRepository
}

func NewService(appointments store.AppointmentRepository, configs store.ScheduleConfigRepository) *Service {
	return &Service{appointments: appointments, configs: configs}
}

// SlotAvailability is one bookable window on a day. AvailableSlots keeps the
// historical one-bit signal (1 when any capacity remains, else 0);
// RemainingCapacity carries the true remaining count.
type SlotAvailability struct {
	Date              string `json:"date"`
	Time              string `json:"time"`
	AvailableSlots    int    `json:"available_slots"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

// AvailableSlots lists every open slot on the given "YYYY-MM-DD" date together
// with its availability. Weekends and days off yield an empty list. The call
// has no side effects beyond lazily creating the default configuration.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]SlotAvailability, error) {
	if strings.TrimSpace(date) == "" {
		return nil, validationError("Date query parameter is required")
	}

	cfg, err := s.configs.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	day, err := domain.NormalizeDate(date, loc)
	if err != nil {
		return nil, err
	}

	slots, err := domain.EnumerateSlots(day, cfg)
	if err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		count, err := s.appointments.CountByDateAndStart(ctx, day, slot.Start)
		if err != nil {
			return nil, err
		}

		available := 0
		if count < cfg.MaxSlotsPerAppointment {
			available = 1
		}
		remaining := cfg.MaxSlotsPerAppointment - count
		if remaining < 0 {
			remaining = 0
		}

		out = append(out, SlotAvailability{
			Date:              day.Format("2006-01-02"),
			Time:              slot.Start.Format("15:04"),
			AvailableSlots:    available,
			RemainingCapacity: remaining,
		})
	}
	return out, nil
}

// Book reserves the slot starting at timeOfDay ("HH:mm") on date
// ("YYYY-MM-DD"). Calendar rules are evaluated first (weekend, day off,
// blackout); the capacity re-check and the insert then run atomically in the
// repository, so concurrent requests for the same slot cannot overbook it.
func (s *Service) Book(ctx context.Context, date, timeOfDay string) (domain.Appointment, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(timeOfDay) == "" {
		return domain.Appointment{}, validationError("Date and time are required")
	}

	cfg, err := s.configs.Ensure(ctx)
	if err != nil {
		return domain.Appointment{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return domain.Appointment{}, err
	}

	day, err := domain.NormalizeDate(date, loc)
	if err != nil {
		return domain.Appointment{}, err
	}
	tod, err := domain.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return domain.Appointment{}, validationError("invalid time, expected HH:mm")
	}

	start := tod.At(day)
	end := start.Add(time.Duration(cfg.SlotDuration) * time.Minute)

	if err := domain.CheckBookable(day, start, end, cfg); err != nil {
		return domain.Appointment{}, err
	}

	return s.appointments.BookSlot(ctx, domain.Appointment{
		Date:      day,
		StartTime: start,
		EndTime:   end,
	}, cfg.MaxSlotsPerAppointment)
}
