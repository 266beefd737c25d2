package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/imports"
)

type recordRepository struct {
	db *sqlx.DB
}

var _ imports.Repository = (*recordRepository)(nil)

func NewRecordRepository(db *sqlx.DB) *recordRepository {
	return &recordRepository{db: db}
}

func (repo recordRepository) GetRecord(ctx context.Context, keyValue, period string) (imports.Record, error) {
	var rec imports.Record
	query := `SELECT id, key_value, period, fields, risk_level FROM import_record WHERE key_value = $1 AND period = $2`
	if err := repo.db.GetContext(ctx, &rec, query, keyValue, period); err != nil {
		if err == sql.ErrNoRows {
			return imports.Record{}, imports.ErrRecordNotFound
		}
		return imports.Record{}, errors.Wrap(err, "getting record")
	}
	return rec, nil
}

func (repo recordRepository) CreateRecord(ctx context.Context, rec imports.Record) (imports.Record, error) {
	query := `INSERT INTO import_record (id, key_value, period, fields, risk_level) VALUES (:id, :key_value, :period, :fields, :risk_level)`
	if _, err := repo.db.NamedExecContext(ctx, query, rec); err != nil {
		return imports.Record{}, errors.Wrap(err, "creating record")
	}
	return rec, nil
}

func (repo recordRepository) UpdateRecord(ctx context.Context, rec imports.Record) (imports.Record, error) {
	query := `UPDATE import_record SET fields = :fields, risk_level = :risk_level WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return imports.Record{}, errors.Wrap(err, "updating record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return imports.Record{}, imports.ErrRecordNotFound
	}
	return rec, nil
}

func (repo recordRepository) QueryAllRecords(ctx context.Context) ([]imports.Record, error) {
	var recs []imports.Record
	query := `SELECT id, key_value, period, fields, risk_level FROM import_record ORDER BY period, key_value`
	if err := repo.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return recs, nil
}
