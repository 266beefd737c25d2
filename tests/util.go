package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/risk"
)

func CreateRecord(
	t *testing.T,
	repo imports.Repository,
	keyValue, period string,
	fields imports.Fields,
	level ...risk.Level,
) imports.Record {
	t.Helper()
	rec := imports.Record{
		ID:       uuid.New().String(),
		KeyValue: keyValue,
		Period:   period,
		Fields:   fields,
	}
	if len(level) > 0 {
		rec.RiskLevel = level[0]
	}
	rec, err := repo.CreateRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return rec
}

func CreateAlert(
	t *testing.T,
	repo alert.Repository,
	recordID, recordName, period string,
	level risk.Level,
) alert.Alert {
	t.Helper()
	a, err := repo.CreateAlert(context.Background(), alert.Alert{
		ID:         uuid.New().String(),
		RecordID:   recordID,
		RecordName: recordName,
		Period:     period,
		RiskLevel:  level,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createAlert() failed: %v", err)
	}
	return a
}
