package schedule

import (
	"context"
	"errors"
	"testing"

	"bookwise/backend/internal/domain"
	"bookwise/backend/internal/store"
)

type fakeConfigs struct {
	cfg      domain.ScheduleConfig
	ensureN  int
	updateFn func(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error)
}

func (f *fakeConfigs) Ensure(ctx context.Context) (domain.ScheduleConfig, error) {
	f.ensureN++
	return f.cfg, nil
}

func (f *fakeConfigs) Update(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, patch)
}

func TestGetConfig_DelegatesToEnsure(t *testing.T) {
	repo := &fakeConfigs{cfg: domain.DefaultScheduleConfig()}
	svc := NewService(repo)

	cfg, err := svc.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig error: %v", err)
	}
	if repo.ensureN != 1 {
		t.Fatalf("Ensure calls = %d, want 1", repo.ensureN)
	}
	if cfg.SlotDuration != 30 || cfg.MaxSlotsPerAppointment != 1 {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if cfg.OperationalStartTime != "09:00" || cfg.OperationalEndTime != "18:00" {
		t.Fatalf("operational window = %s-%s, want 09:00-18:00", cfg.OperationalStartTime, cfg.OperationalEndTime)
	}
}

func TestUpdateConfig_PassesPatchThrough(t *testing.T) {
	var got store.ConfigPatch
	repo := &fakeConfigs{
		cfg: domain.DefaultScheduleConfig(),
		updateFn: func(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error) {
			got = patch
			cfg := domain.DefaultScheduleConfig()
			return cfg, nil
		},
	}
	svc := NewService(repo)

	duration := 15
	daysOff := []string{"2026-12-25"}
	_, err := svc.UpdateConfig(context.Background(), UpdateInput{
		SlotDuration: &duration,
		DaysOff:      &daysOff,
	})
	if err != nil {
		t.Fatalf("UpdateConfig error: %v", err)
	}
	if got.SlotDuration == nil || *got.SlotDuration != 15 {
		t.Fatalf("patch slotDuration = %v, want 15", got.SlotDuration)
	}
	if got.DaysOff == nil || len(*got.DaysOff) != 1 || (*got.DaysOff)[0] != "2026-12-25" {
		t.Fatalf("patch daysOff = %v, want [2026-12-25]", got.DaysOff)
	}
	if got.Timezone != nil || got.OperationalStartTime != nil {
		t.Fatalf("unset fields must stay nil, got %+v", got)
	}
}

func TestUpdateConfig_ValidationFailures(t *testing.T) {
	repo := &fakeConfigs{
		cfg: domain.DefaultScheduleConfig(),
		updateFn: func(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error) {
			t.Fatalf("Update must not be reached on validation failure")
			return domain.ScheduleConfig{}, nil
		},
	}
	svc := NewService(repo)

	badTZ := "Mars/Olympus"
	badDuration := 0
	badMax := -1
	badTime := "9am"
	badDay := "25/12/2026"
	badRange := "10:00-09:00"

	cases := []struct {
		name string
		in   UpdateInput
	}{
		{"timezone", UpdateInput{Timezone: &badTZ}},
		{"slot duration", UpdateInput{SlotDuration: &badDuration}},
		{"max slots", UpdateInput{MaxSlotsPerAppointment: &badMax}},
		{"start time", UpdateInput{OperationalStartTime: &badTime}},
		{"end time", UpdateInput{OperationalEndTime: &badTime}},
		{"days off", UpdateInput{DaysOff: &[]string{badDay}}},
		{"blackout format", UpdateInput{UnavailableHours: &[]string{"lunch"}}},
		{"blackout order", UpdateInput{UnavailableHours: &[]string{badRange}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateConfig(context.Background(), tc.in)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error type = %T (%v), want *ValidationError", err, err)
			}
		})
	}
}

func TestUpdateConfig_OperationalWindowCrossField(t *testing.T) {
	repo := &fakeConfigs{
		cfg: domain.DefaultScheduleConfig(),
		updateFn: func(ctx context.Context, patch store.ConfigPatch) (domain.ScheduleConfig, error) {
			return domain.DefaultScheduleConfig(), nil
		},
	}
	svc := NewService(repo)

	// Patching only the start past the stored 18:00 end must fail.
	lateStart := "19:00"
	_, err := svc.UpdateConfig(context.Background(), UpdateInput{OperationalStartTime: &lateStart})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T (%v), want *ValidationError", err, err)
	}

	// Moving both ends together is fine.
	start := "19:00"
	end := "21:00"
	_, err = svc.UpdateConfig(context.Background(), UpdateInput{
		OperationalStartTime: &start,
		OperationalEndTime:   &end,
	})
	if err != nil {
		t.Fatalf("UpdateConfig error: %v", err)
	}
}
