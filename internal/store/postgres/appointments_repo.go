package postgres

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"bookwise/backend/internal/domain"
	"bookwise/backend/internal/store"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (r *AppointmentRepo) CountByDateAndStart(ctx context.Context, date, startTime time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*domain.Appointment)(nil)).
		Where("date = ?", date).
		Where("start_time = ?", startTime).
		Count(ctx)
}

// BookSlot serializes the occupancy check and the insert behind a
// transaction-scoped advisory lock keyed by the slot, so that concurrent
// bookings of the same (date, start time) pair can never exceed maxPerSlot.
func (r *AppointmentRepo) BookSlot(ctx context.Context, appt domain.Appointment, maxPerSlot int) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockSlot(ctx, tx, appt.Date, appt.StartTime); err != nil {
			return err
		}

		count, err := tx.NewSelect().
			Model((*domain.Appointment)(nil)).
			Where("date = ?", appt.Date).
			Where("start_time = ?", appt.StartTime).
			Count(ctx)
		if err != nil {
			return err
		}
		if count >= maxPerSlot {
			return store.ErrSlotFull
		}

		m := appt
		if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func lockSlot(ctx context.Context, tx bun.Tx, date, startTime time.Time) error {
	key := date.UTC().Format("2006-01-02") + "|" + startTime.UTC().Format(time.RFC3339)
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", key).Exec(ctx)
	return err
}
