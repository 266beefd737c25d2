package alert

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/risk"
)

var ErrNotFound = errors.New("alert not found")

// Alert notifies the coordination team that a record crossed into medium or
// high risk during an import. It carries enough payload for the
// notification UI to render and act on it without re-running the
// classifier.
type Alert struct {
	ID          string     `json:"id" db:"id"`
	RecordID    string     `json:"record_id" db:"record_id"`
	RecordName  string     `json:"record_name" db:"record_name"`
	Period      string     `json:"period" db:"period"`
	RiskLevel   risk.Level `json:"risk_level" db:"risk_level"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"` // UTC
	Read        bool       `json:"read" db:"read"`
	ActionTaken bool       `json:"action_taken" db:"action_taken"`
}

// Repository is the caller's alert store, consumed by the notification UI.
type Repository interface {
	CreateAlert(ctx context.Context, a Alert) (Alert, error)
	AlertExists(ctx context.Context, recordID, period string) (bool, error)
	GetAlertByID(ctx context.Context, id string) (Alert, error)
	QueryAllAlerts(ctx context.Context) ([]Alert, error)
	UpdateAlert(ctx context.Context, a Alert) (Alert, error)
}
