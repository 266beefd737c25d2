package inmemdb

import (
	"context"
	"sort"

	"github.com/edukeep/edukeep/core/alert"
)

type alertRepository struct {
	db *alertTable
}

func NewAlertRepository(db *DB) alert.Repository {
	return &alertRepository{db: db.alert}
}

func (repo *alertRepository) CreateAlert(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *alertRepository) AlertExists(ctx context.Context, recordID, period string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, a := range repo.db.table {
		if a.RecordID == recordID && a.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (repo *alertRepository) GetAlertByID(ctx context.Context, id string) (alert.Alert, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return alert.Alert{}, alert.ErrNotFound
}

func (repo *alertRepository) QueryAllAlerts(ctx context.Context) ([]alert.Alert, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	alerts := make([]alert.Alert, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		alerts = append(alerts, *a)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].CreatedAt.After(alerts[j].CreatedAt) })
	return alerts, nil
}

func (repo *alertRepository) UpdateAlert(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[a.ID]; !ok {
		return alert.Alert{}, alert.ErrNotFound
	}
	repo.db.table[a.ID] = &a
	return a, nil
}
