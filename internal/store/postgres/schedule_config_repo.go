package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"bookwise/backend/internal/domain"
	"bookwise/backend/internal/store"
)

type ScheduleConfigRepo struct {
	db *bun.DB
}

func NewScheduleConfigRepo(db *bun.DB) *ScheduleConfigRepo {
	return &ScheduleConfigRepo{db: db}
}

func (r *ScheduleConfigRepo) Ensure(ctx context.Context) (domain.ScheduleConfig, error) {
	var out domain.ScheduleConfig
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockConfig(ctx, tx); err != nil {
			return err
		}

		cfg, err := findFirstConfig(ctx, tx)
		if err == nil {
			out = cfg
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		m := domain.DefaultScheduleConfig()
		if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return domain.ScheduleConfig{}, err
	}
	return out, nil
}

func (r *ScheduleConfigRepo) Update(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error) {
	var out domain.ScheduleConfig
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockConfig(ctx, tx); err != nil {
			return err
		}

		cfg, err := findFirstConfig(ctx, tx)
		if errors.Is(err, sql.ErrNoRows) {
			m := domain.DefaultScheduleConfig()
			applyConfigPatch(&m, patch)
			if _, err := tx.NewInsert().Model(&m).Exec(ctx); err != nil {
				return err
			}
			out = m
			return nil
		}
		if err != nil {
			return err
		}

		applyConfigPatch(&cfg, patch)
		if _, err := tx.NewUpdate().Model(&cfg).WherePK().Exec(ctx); err != nil {
			return err
		}
		out = cfg
		return nil
	})
	if err != nil {
		return domain.ScheduleConfig{}, err
	}
	return out, nil
}

// lockConfig serializes ensure-or-create against concurrent first reads so
// only one default row can ever be created.
func lockConfig(ctx context.Context, tx bun.Tx) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "schedule_config").Exec(ctx)
	return err
}

func findFirstConfig(ctx context.Context, tx bun.Tx) (domain.ScheduleConfig, error) {
	var cfg domain.ScheduleConfig
	err := tx.NewSelect().
		Model(&cfg).
		OrderExpr("created_at ASC").
		Limit(1).
		Scan(ctx)
	return cfg, err
}

func applyConfigPatch(cfg *domain.ScheduleConfig, patch store.ConfigPatch) {
	if patch.Timezone != nil {
		cfg.Timezone = *patch.Timezone
	}
	if patch.SlotDuration != nil {
		cfg.SlotDuration = *patch.SlotDuration
	}
	if patch.MaxSlotsPerAppointment != nil {
		cfg.MaxSlotsPerAppointment = *patch.MaxSlotsPerAppointment
	}
	if patch.OperationalStartTime != nil {
		cfg.OperationalStartTime = *patch.OperationalStartTime
	}
	if patch.OperationalEndTime != nil {
		cfg.OperationalEndTime = *patch.OperationalEndTime
	}
	if patch.DaysOff != nil {
		cfg.DaysOff = *patch.DaysOff
	}
	if patch.UnavailableHours != nil {
		cfg.UnavailableHours = *patch.UnavailableHours
	}
}
