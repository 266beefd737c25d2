package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/alert"
)

type alertRepository struct {
	db *sqlx.DB
}

var _ alert.Repository = (*alertRepository)(nil)

func NewAlertRepository(db *sqlx.DB) *alertRepository {
	return &alertRepository{db: db}
}

func (repo alertRepository) CreateAlert(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	query := `INSERT INTO alert (id, record_id, record_name, period, risk_level, created_at, read, action_taken)
VALUES (:id, :record_id, :record_name, :period, :risk_level, :created_at, :read, :action_taken)`
	if _, err := repo.db.NamedExecContext(ctx, query, a); err != nil {
		return alert.Alert{}, errors.Wrap(err, "creating alert")
	}
	return a, nil
}

func (repo alertRepository) AlertExists(ctx context.Context, recordID, period string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM alert WHERE record_id = $1 AND period = $2)`
	if err := repo.db.GetContext(ctx, &exists, query, recordID, period); err != nil {
		return false, errors.Wrap(err, "checking alert existence")
	}
	return exists, nil
}

func (repo alertRepository) GetAlertByID(ctx context.Context, id string) (alert.Alert, error) {
	var a alert.Alert
	query := `SELECT id, record_id, record_name, period, risk_level, created_at, read, action_taken FROM alert WHERE id = $1`
	if err := repo.db.GetContext(ctx, &a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return alert.Alert{}, alert.ErrNotFound
		}
		return alert.Alert{}, errors.Wrap(err, "getting alert")
	}
	return a, nil
}

func (repo alertRepository) QueryAllAlerts(ctx context.Context) ([]alert.Alert, error) {
	var alerts []alert.Alert
	query := `SELECT id, record_id, record_name, period, risk_level, created_at, read, action_taken FROM alert ORDER BY created_at DESC`
	if err := repo.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, errors.Wrap(err, "querying alerts")
	}
	return alerts, nil
}

func (repo alertRepository) UpdateAlert(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	query := `UPDATE alert SET read = :read, action_taken = :action_taken WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return alert.Alert{}, errors.Wrap(err, "updating alert")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return alert.Alert{}, alert.ErrNotFound
	}
	return a, nil
}
