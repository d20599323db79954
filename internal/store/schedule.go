package store

import (
	"context"

	"bookwise/backend/internal/domain"
)

// ConfigPatch is a partial schedule configuration update. Nil fields are left
// unchanged.
type ConfigPatch struct {
	Timezone               *string
	SlotDuration           *int
	MaxSlotsPerAppointment *int
	OperationalStartTime   *string
	OperationalEndTime     *string
	DaysOff                *[]string
	UnavailableHours       *[]string
}

type ScheduleConfigRepository interface {
	// Ensure returns the stored configuration, creating the defaults on first
	// access.
	Ensure(ctx context.Context) (domain.ScheduleConfig, error)

	// Update merges the patch over the stored configuration, creating it from
	// the defaults first when absent.
	Update(ctx context.Context, patch ConfigPatch) (domain.ScheduleConfig, error)
}
