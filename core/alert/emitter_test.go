package alert

import (
	"context"
	"testing"

	"github.com/edukeep/edukeep/core/risk"
)

type fakeRepo struct {
	alerts []Alert
}

func (r *fakeRepo) CreateAlert(ctx context.Context, a Alert) (Alert, error) {
	r.alerts = append(r.alerts, a)
	return a, nil
}

func (r *fakeRepo) AlertExists(ctx context.Context, recordID, period string) (bool, error) {
	for _, a := range r.alerts {
		if a.RecordID == recordID && a.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetAlertByID(ctx context.Context, id string) (Alert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return Alert{}, ErrNotFound
}

func (r *fakeRepo) QueryAllAlerts(ctx context.Context) ([]Alert, error) { return r.alerts, nil }

func (r *fakeRepo) UpdateAlert(ctx context.Context, a Alert) (Alert, error) {
	for i := range r.alerts {
		if r.alerts[i].ID == a.ID {
			r.alerts[i] = a
			return a, nil
		}
	}
	return Alert{}, ErrNotFound
}

func TestEmitLevels(t *testing.T) {
	tests := []struct {
		name  string
		level risk.Level
		want  bool
	}{
		{name: "low emits nothing", level: risk.LevelLow, want: false},
		{name: "unclassified emits nothing", level: "", want: false},
		{name: "medium emits", level: risk.LevelMedium, want: true},
		{name: "high emits", level: risk.LevelHigh, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmitter(&fakeRepo{})
			a, err := e.Emit(context.Background(), "rec-1", "Ana Souza", "2026-08", tt.level)
			if err != nil {
				t.Fatalf("Emit() failed: %v", err)
			}
			if (a != nil) != tt.want {
				t.Errorf("Emit() alert = %v, want emitted=%v", a, tt.want)
			}
			if a != nil && (a.RecordID != "rec-1" || a.RiskLevel != tt.level || a.ID == "") {
				t.Errorf("Emit() alert = %+v", a)
			}
		})
	}
}

func TestEmitIdempotentWithinBatch(t *testing.T) {
	repo := &fakeRepo{}
	e := NewEmitter(repo)
	ctx := context.Background()

	first, err := e.Emit(ctx, "rec-1", "Ana", "2026-08", risk.LevelHigh)
	if err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if first == nil {
		t.Fatal("first Emit() returned nil")
	}

	second, err := e.Emit(ctx, "rec-1", "Ana", "2026-08", risk.LevelHigh)
	if err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if second != nil {
		t.Error("second Emit() for the same (record, period) created a duplicate")
	}
	if len(repo.alerts) != 1 {
		t.Errorf("store holds %d alerts, want 1", len(repo.alerts))
	}
}

func TestEmitIdempotentAcrossBatches(t *testing.T) {
	repo := &fakeRepo{}
	ctx := context.Background()

	if _, err := NewEmitter(repo).Emit(ctx, "rec-1", "Ana", "2026-08", risk.LevelMedium); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	// a fresh emitter (new import, same period) must also be a no-op
	a, err := NewEmitter(repo).Emit(ctx, "rec-1", "Ana", "2026-08", risk.LevelMedium)
	if err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if a != nil {
		t.Error("re-import in the same period created a duplicate alert")
	}

	// a different period is a separate alert
	b, err := NewEmitter(repo).Emit(ctx, "rec-2", "Ana", "2026-09", risk.LevelMedium)
	if err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	if b == nil {
		t.Error("new period did not emit")
	}
	if len(repo.alerts) != 2 {
		t.Errorf("store holds %d alerts, want 2", len(repo.alerts))
	}
}
