package imports

import (
	"context"
	"testing"
)

// fakeRepo is a minimal in-memory Repository for pipeline tests.
type fakeRepo struct {
	records map[string]Record // id -> record
	creates int
	updates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]Record)}
}

func (r *fakeRepo) GetRecord(ctx context.Context, keyValue, period string) (Record, error) {
	for _, rec := range r.records {
		if rec.KeyValue == keyValue && rec.Period == period {
			return rec, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (r *fakeRepo) CreateRecord(ctx context.Context, rec Record) (Record, error) {
	r.records[rec.ID] = rec
	r.creates++
	return rec, nil
}

func (r *fakeRepo) UpdateRecord(ctx context.Context, rec Record) (Record, error) {
	if _, ok := r.records[rec.ID]; !ok {
		return Record{}, ErrRecordNotFound
	}
	r.records[rec.ID] = rec
	r.updates++
	return rec, nil
}

func (r *fakeRepo) QueryAllRecords(ctx context.Context) ([]Record, error) {
	recs := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *fakeRepo) seed(t *testing.T, rec Record) Record {
	t.Helper()
	r.records[rec.ID] = rec
	return rec
}

func TestReconcileInsertsUnknownKeys(t *testing.T) {
	repo := newFakeRepo()
	records := []Record{
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nome": "Ana"}},
		{KeyValue: "R002", Period: "2026-08", Fields: Fields{"nome": "Bruno"}},
	}

	plan, err := Reconcile(context.Background(), records, repo)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if len(plan.Inserted) != 2 || len(plan.Updated) != 0 {
		t.Fatalf("plan = %d inserted, %d updated; want 2, 0", len(plan.Inserted), len(plan.Updated))
	}
	for _, rec := range plan.Inserted {
		if rec.ID == "" {
			t.Errorf("inserted record %q has no ID", rec.KeyValue)
		}
	}
}

func TestReconcileUpdatesSamePeriod(t *testing.T) {
	repo := newFakeRepo()
	existing := repo.seed(t, Record{
		ID:       "id-1",
		KeyValue: "R001",
		Period:   "2026-08",
		Fields:   Fields{"nome": "Ana", "frequencia": "95"},
	})

	plan, err := Reconcile(context.Background(), []Record{
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nota": "4.5"}},
	}, repo)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if len(plan.Updated) != 1 || len(plan.Inserted) != 0 {
		t.Fatalf("plan = %d inserted, %d updated; want 0, 1", len(plan.Inserted), len(plan.Updated))
	}

	got := plan.Updated[0]
	if got.ID != existing.ID {
		t.Errorf("ID = %q, want existing %q", got.ID, existing.ID)
	}
	// fresh fields win, untouched fields carry forward
	if got.Fields["nota"] != "4.5" {
		t.Errorf("nota = %q, want %q", got.Fields["nota"], "4.5")
	}
	if got.Fields["frequencia"] != "95" {
		t.Errorf("frequencia = %q, want %q", got.Fields["frequencia"], "95")
	}
	if got.Fields["nome"] != "Ana" {
		t.Errorf("nome = %q, want %q", got.Fields["nome"], "Ana")
	}
}

func TestReconcileNewPeriodInserts(t *testing.T) {
	repo := newFakeRepo()
	existing := repo.seed(t, Record{
		ID:       "id-1",
		KeyValue: "R001",
		Period:   "2026-07",
		Fields:   Fields{"nome": "Ana"},
	})

	plan, err := Reconcile(context.Background(), []Record{
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nome": "Ana"}},
	}, repo)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if len(plan.Inserted) != 1 || len(plan.Updated) != 0 {
		t.Fatalf("plan = %d inserted, %d updated; want 1, 0", len(plan.Inserted), len(plan.Updated))
	}
	if plan.Inserted[0].ID == existing.ID {
		t.Error("new period record reused the old ID")
	}
}

func TestReconcileLastRowWinsInBatch(t *testing.T) {
	repo := newFakeRepo()

	plan, err := Reconcile(context.Background(), []Record{
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nome": "Ana", "nota": "5"}},
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nota": "8"}},
	}, repo)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if len(plan.Inserted) != 1 {
		t.Fatalf("plan = %d inserted, want 1 (duplicates collapse)", len(plan.Inserted))
	}
	got := plan.Inserted[0]
	if got.Fields["nota"] != "8" {
		t.Errorf("nota = %q, want the later row's %q", got.Fields["nota"], "8")
	}
	if got.Fields["nome"] != "Ana" {
		t.Errorf("nome = %q, want %q carried from the earlier row", got.Fields["nome"], "Ana")
	}
}

func TestReconcileWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(t, Record{ID: "id-1", KeyValue: "R001", Period: "2026-08", Fields: Fields{"nome": "Ana"}})

	_, err := Reconcile(context.Background(), []Record{
		{KeyValue: "R001", Period: "2026-08", Fields: Fields{"nota": "9"}},
		{KeyValue: "R002", Period: "2026-08", Fields: Fields{"nome": "Bruno"}},
	}, repo)
	if err != nil {
		t.Fatalf("Reconcile() failed: %v", err)
	}
	if repo.creates != 0 || repo.updates != 0 {
		t.Errorf("Reconcile() wrote to the repo: %d creates, %d updates", repo.creates, repo.updates)
	}
}
