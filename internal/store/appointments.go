package store

import (
	"context"
	"time"

	"bookwise/backend/internal/domain"
)

type AppointmentRepository interface {
	// CountByDateAndStart returns the current occupancy for one exact
	// (date, start time) pair.
	CountByDateAndStart(ctx context.Context, date, startTime time.Time) (int, error)

	// BookSlot re-checks occupancy for the appointment's slot and inserts the
	// appointment as one atomic unit, returning ErrSlotFull when the slot
	// already holds maxPerSlot reservations.
	BookSlot(ctx context.Context, appt domain.Appointment, maxPerSlot int) (domain.Appointment, error)
}
