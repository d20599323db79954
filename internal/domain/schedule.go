package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScheduleConfig is the single-row scheduling rule set. Times of day are
// stored as "HH:mm", days off as "YYYY-MM-DD" and blackout windows as
// "HH:mm-HH:mm".
type ScheduleConfig struct {
	bun.BaseModel `bun:"table:schedule_configs"`

	ID                     uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Timezone               string    `bun:"timezone,notnull" json:"timezone"`
	SlotDuration           int       `bun:"slot_duration,notnull" json:"slotDuration"`
	MaxSlotsPerAppointment int       `bun:"max_slots_per_appointment,notnull" json:"maxSlotsPerAppointment"`
	OperationalStartTime   string    `bun:"operational_start_time,notnull" json:"operationalStartTime"`
	OperationalEndTime     string    `bun:"operational_end_time,notnull" json:"operationalEndTime"`
	DaysOff                []string  `bun:"days_off,array,notnull" json:"daysOff"`
	UnavailableHours       []string  `bun:"unavailable_hours,array,notnull" json:"unavailableHours"`
	CreatedAt              time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt              time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// DefaultScheduleConfig is the configuration created lazily on first read.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Timezone:               "UTC",
		SlotDuration:           30,
		MaxSlotsPerAppointment: 1,
		OperationalStartTime:   "09:00",
		OperationalEndTime:     "18:00",
		DaysOff:                []string{},
		UnavailableHours:       []string{},
	}
}

// Location resolves the configured IANA zone; an empty zone means UTC.
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *ScheduleConfig) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if c.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			c.ID = id
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		c.UpdatedAt = now
	}
	return nil
}
