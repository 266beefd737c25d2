package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/risk"
)

type thresholdRepository struct {
	db *sqlx.DB
}

var _ risk.ThresholdRepository = (*thresholdRepository)(nil)

func NewThresholdRepository(db *sqlx.DB) *thresholdRepository {
	return &thresholdRepository{db: db}
}

// GetThresholds returns the stored thresholds, falling back to the
// defaults when none have been saved yet.
func (repo thresholdRepository) GetThresholds(ctx context.Context) (risk.Thresholds, error) {
	var t risk.Thresholds
	query := `SELECT grade_high, grade_medium, attendance_high, attendance_medium, behavior_high, behavior_medium
FROM risk_threshold WHERE id = 1`
	if err := repo.db.GetContext(ctx, &t, query); err != nil {
		if err == sql.ErrNoRows {
			return risk.DefaultThresholds(), nil
		}
		return risk.Thresholds{}, errors.Wrap(err, "getting thresholds")
	}
	return t, nil
}

func (repo thresholdRepository) SaveThresholds(ctx context.Context, t risk.Thresholds) error {
	query := `INSERT INTO risk_threshold (id, grade_high, grade_medium, attendance_high, attendance_medium, behavior_high, behavior_medium)
VALUES (1, :grade_high, :grade_medium, :attendance_high, :attendance_medium, :behavior_high, :behavior_medium)
ON CONFLICT (id) DO UPDATE SET
	grade_high = EXCLUDED.grade_high,
	grade_medium = EXCLUDED.grade_medium,
	attendance_high = EXCLUDED.attendance_high,
	attendance_medium = EXCLUDED.attendance_medium,
	behavior_high = EXCLUDED.behavior_high,
	behavior_medium = EXCLUDED.behavior_medium`
	if _, err := repo.db.NamedExecContext(ctx, query, t); err != nil {
		return errors.Wrap(err, "saving thresholds")
	}
	return nil
}
