package schedule

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
	configs store.ScheduleConfigRepository
}

func NewService(configs store.ScheduleConfigRepository) *Service {
	return &Service{configs: configs}
}

// UpdateInput is a partial configuration update. Nil fields are left as-is.
type UpdateInput struct {
	Timezone               *string
	SlotDuration           *int
	MaxSlotsPerAppointment *int
	OperationalStartTime   *string
	OperationalEndTime     *string
	DaysOff                *[]string
	UnavailableHours       *[]string
}

func (s *Service) GetConfig(ctx context.Context) (domain.ScheduleConfig, error) {
	return s.configs.Ensure(ctx)
}

func (s *Service) UpdateConfig(ctx context.Context, in UpdateInput) (domain.ScheduleConfig, error) {
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if tz != "" {
			if _, err := time.LoadLocation(tz); err != nil {
				return domain.ScheduleConfig{}, validationError("invalid timezone")
			}
		}
		in.Timezone = &tz
	}
	if in.SlotDuration != nil && *in.SlotDuration <= 0 {
		return domain.ScheduleConfig{}, validationError("slotDuration must be positive")
	}
	if in.MaxSlotsPerAppointment != nil && *in.MaxSlotsPerAppointment <= 0 {
		return domain.ScheduleConfig{}, validationError("maxSlotsPerAppointment must be positive")
	}
	if in.OperationalStartTime != nil {
		if _, err := domain.ParseTimeOfDay(*in.OperationalStartTime); err != nil {
			return domain.ScheduleConfig{}, validationError("invalid operationalStartTime, expected HH:mm")
		}
	}
	if in.OperationalEndTime != nil {
		if _, err := domain.ParseTimeOfDay(*in.OperationalEndTime); err != nil {
			return domain.ScheduleConfig{}, validationError("invalid operationalEndTime, expected HH:mm")
		}
	}
	if in.DaysOff != nil {
		for _, d := range *in.DaysOff {
			if _, err := domain.NormalizeDate(d, time.UTC); err != nil {
				return domain.ScheduleConfig{}, validationError("invalid daysOff entry, expected YYYY-MM-DD")
			}
		}
	}
	if in.UnavailableHours != nil {
		for _, h := range *in.UnavailableHours {
			r, err := domain.ParseHourRange(h)
			if err != nil {
				return domain.ScheduleConfig{}, validationError("invalid unavailableHours entry, expected HH:mm-HH:mm")
			}
			if !r.Start.Before(r.End) {
				return domain.ScheduleConfig{}, validationError("unavailableHours range must start before it ends")
			}
		}
	}

	if in.OperationalStartTime != nil || in.OperationalEndTime != nil {
		current, err := s.configs.Ensure(ctx)
		if err != nil {
			return domain.ScheduleConfig{}, err
		}
		startRaw := current.OperationalStartTime
		if in.OperationalStartTime != nil {
			startRaw = *in.OperationalStartTime
		}
		endRaw := current.OperationalEndTime
		if in.OperationalEndTime != nil {
			endRaw = *in.OperationalEndTime
		}
		start, err := domain.ParseTimeOfDay(startRaw)
		if err != nil {
			return domain.ScheduleConfig{}, validationError("invalid operationalStartTime, expected HH:mm")
		}
		end, err := domain.ParseTimeOfDay(endRaw)
		if err != nil {
			return domain.ScheduleConfig{}, validationError("invalid operationalEndTime, expected HH:mm")
		}
		if !start.Before(end) {
			return domain.ScheduleConfig{}, validationError("operationalStartTime must be before operationalEndTime")
		}
	}

	return s.configs.Update(ctx, store.ConfigPatch{
		Timezone:               in.Timezone,
		SlotDuration:           in.SlotDuration,
		MaxSlotsPerAppointment: in.MaxSlotsPerAppointment,
		OperationalStartTime:   in.OperationalStartTime,
		OperationalEndTime:     in.OperationalEndTime,
		DaysOff:                in.DaysOff,
		UnavailableHours:       in.UnavailableHours,
	})
}
