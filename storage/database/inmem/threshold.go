package inmemdb

import (
	"context"

	"github.com/edukeep/edukeep/core/risk"
)

type thresholdRepository struct {
	db *thresholdTable
}

func NewThresholdRepository(db *DB) risk.ThresholdRepository {
	return &thresholdRepository{db: db.threshold}
}

func (repo *thresholdRepository) GetThresholds(ctx context.Context) (risk.Thresholds, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.db.current == nil {
		return risk.DefaultThresholds(), nil
	}
	return *repo.db.current, nil
}

func (repo *thresholdRepository) SaveThresholds(ctx context.Context, t risk.Thresholds) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.current = &t
	return nil
}
