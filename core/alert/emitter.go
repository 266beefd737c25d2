package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/risk"
)

var NowFunc = time.Now // mockable

// Emitter creates at most one Alert per (recordID, period) pair. Use one
// Emitter per import batch; it also checks the store, so re-importing the
// same key within the same period never duplicates an alert either.
type Emitter struct {
	repo Repository
	seen map[string]struct{}
}

func NewEmitter(repo Repository) *Emitter {
	return &Emitter{
		repo: repo,
		seen: make(map[string]struct{}),
	}
}

// Emit stores an alert for a record that classified medium or high.
// Low-risk records emit nothing. Emit is idempotent per (recordID, period):
// repeated calls within the batch, or across batches in the same period,
// yield at most one Alert.
func (e *Emitter) Emit(ctx context.Context, recordID, recordName, period string, level risk.Level) (*Alert, error) {
	if level != risk.LevelMedium && level != risk.LevelHigh {
		return nil, nil
	}

	key := recordID + "|" + period
	if _, ok := e.seen[key]; ok {
		return nil, nil
	}
	exists, err := e.repo.AlertExists(ctx, recordID, period)
	if err != nil {
		return nil, errors.Wrap(err, "checking for existing alert")
	}
	if exists {
		e.seen[key] = struct{}{}
		return nil, nil
	}

	a := Alert{
		ID:         uuid.New().String(),
		RecordID:   recordID,
		RecordName: recordName,
		Period:     period,
		RiskLevel:  level,
		CreatedAt:  NowFunc().UTC(),
	}
	a, err = e.repo.CreateAlert(ctx, a)
	if err != nil {
		return nil, errors.Wrap(err, "creating alert")
	}
	e.seen[key] = struct{}{}
	return &a, nil
}
