package inmemdb

import (
	"context"
	"sort"

	"github.com/edukeep/edukeep/core/imports"
)

type recordRepository struct {
	db *recordTable
}

func NewRecordRepository(db *DB) imports.Repository {
	return &recordRepository{db: db.record}
}

func (repo *recordRepository) query() []imports.Record {
	recs := make([]imports.Record, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		recs = append(recs, *r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Period != recs[j].Period {
			return recs[i].Period < recs[j].Period
		}
		return recs[i].KeyValue < recs[j].KeyValue
	})
	return recs
}

func (repo *recordRepository) GetRecord(ctx context.Context, keyValue, period string) (imports.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.table {
		if rec.KeyValue == keyValue && rec.Period == period {
			return *rec, nil
		}
	}
	return imports.Record{}, imports.ErrRecordNotFound
}

func (repo *recordRepository) CreateRecord(ctx context.Context, rec imports.Record) (imports.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *recordRepository) UpdateRecord(ctx context.Context, rec imports.Record) (imports.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rec.ID]; !ok {
		return imports.Record{}, imports.ErrRecordNotFound
	}
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *recordRepository) QueryAllRecords(ctx context.Context) ([]imports.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}
