package imports

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRecordNotFound is returned by Repository lookups that match nothing.
var ErrRecordNotFound = errors.New("record not found")

type (
	// Repository is the caller-owned record store. The pipeline reads it
	// and writes inserts/updates through it; it never deletes. The caller
	// guarantees no concurrent writer touches the store during one import.
	Repository interface {
		GetRecord(ctx context.Context, keyValue, period string) (Record, error)
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		QueryAllRecords(ctx context.Context) ([]Record, error)
	}

	// Plan is the outcome of reconciliation: the records to insert as new
	// monthly rows and the records to update in place, in file order.
	// Nothing is written until the plan is applied.
	Plan struct {
		Inserted []Record
		Updated  []Record
	}
)

// Reconcile merges validated records against the existing store using the
// monthly-snapshot rule:
//
//   - same keyValue in the same period: update in place, keeping the
//     existing id; fresh fields win, fields absent from the fresh row are
//     carried forward.
//   - same keyValue only in another period (or never seen): insert a brand
//     new record, starting a new historical row for the entity.
//
// Within one batch, rows sharing a (keyValue, period) collapse into a single
// entry with the later row in file order winning, so the plan never proposes
// two live records for the same key in the same period.
func Reconcile(ctx context.Context, records []Record, repo Repository) (Plan, error) {
	staged := make(map[string]int, len(records)) // keyValue -> index in order
	order := make([]Record, 0, len(records))

	for _, rec := range records {
		if i, ok := staged[rec.KeyValue]; ok {
			order[i] = merge(order[i], rec)
			continue
		}
		staged[rec.KeyValue] = len(order)
		order = append(order, rec)
	}

	var plan Plan
	for _, rec := range order {
		existing, err := repo.GetRecord(ctx, rec.KeyValue, rec.Period)
		if err != nil {
			if errors.Cause(err) == ErrRecordNotFound {
				rec.ID = uuid.New().String()
				plan.Inserted = append(plan.Inserted, rec)
				continue
			}
			return Plan{}, errors.Wrapf(err, "looking up record %q", rec.KeyValue)
		}
		merged := merge(existing, rec)
		merged.ID = existing.ID
		plan.Updated = append(plan.Updated, merged)
	}
	return plan, nil
}

// merge unions fields with the fresh record winning; untouched base fields
// carry forward unchanged.
func merge(base, fresh Record) Record {
	out := base
	out.KeyValue = fresh.KeyValue
	out.Period = fresh.Period
	out.Fields = make(Fields, len(base.Fields)+len(fresh.Fields))
	for k, v := range base.Fields {
		out.Fields[k] = v
	}
	for k, v := range fresh.Fields {
		out.Fields[k] = v
	}
	return out
}
