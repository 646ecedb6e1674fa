package record

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lifevault/lifevault/internal/domain/sharing"
)

type mockRepo struct {
	records map[uuid.UUID]*HealthRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*HealthRecord)}
}

func (m *mockRepo) Create(_ context.Context, r *HealthRecord) error {
	r.ID = uuid.New()
	for i := range r.Attachments {
		r.Attachments[i].ID = uuid.New()
		r.Attachments[i].HealthRecordID = r.ID
	}
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*HealthRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]HealthRecord, error) {
	out := []HealthRecord{}
	for _, r := range m.records {
		if r.PatientID == patientID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, r *HealthRecord) error {
	if _, ok := m.records[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

func (m *mockRepo) MarkShared(_ context.Context, id uuid.UUID) error {
	r, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	r.Shared = true
	return nil
}

type mockGrants struct {
	byRecord  map[uuid.UUID][]sharing.Grant
	deleteErr error
	deleted   []uuid.UUID
}

func newMockGrants() *mockGrants {
	return &mockGrants{byRecord: make(map[uuid.UUID][]sharing.Grant)}
}

func (m *mockGrants) ListForRecord(_ context.Context, recordID uuid.UUID) ([]sharing.Grant, error) {
	gs := m.byRecord[recordID]
	if gs == nil {
		gs = []sharing.Grant{}
	}
	return gs, nil
}

func (m *mockGrants) DeleteForRecord(_ context.Context, recordID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, recordID)
	delete(m.byRecord, recordID)
	return nil
}

func identityTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *mockRepo, *mockGrants) {
	repo := newMockRepo()
	grants := newMockGrants()
	return NewService(repo, grants, identityTx), repo, grants
}

func TestCreateRecordWithAttachments(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, Input{
		PatientID: uuid.NewString(),
		Title:     "Blood Test Results",
		Type:      "lab",
		Date:      "2026-03-15",
		Provider:  "City Lab",
		Attachments: []AttachmentInput{
			{Name: "results.pdf", Type: "application/pdf", Size: 1024, URL: "https://files.example.com/results.pdf"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("id not assigned")
	}
	if len(rec.Attachments) != 1 || rec.Attachments[0].HealthRecordID != rec.ID {
		t.Errorf("attachments = %+v", rec.Attachments)
	}
	if rec.Date.Format("2006-01-02") != "2026-03-15" {
		t.Errorf("date = %v", rec.Date)
	}
}

func TestCreateRecordValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Title: "x", Date: "2026-01-01"}); err == nil {
		t.Error("missing patient id: want error")
	}
	if _, err := svc.Create(ctx, Input{PatientID: uuid.NewString(), Title: "x"}); err == nil {
		t.Error("missing date: want error")
	}
	if _, err := svc.Create(ctx, Input{PatientID: uuid.NewString(), Title: "x", Date: "someday"}); err == nil {
		t.Error("bad date: want error")
	}
}

func TestListByPatientNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	patientID := uuid.NewString()

	for _, date := range []string{"2026-01-10", "2026-03-05", "2026-02-20"} {
		if _, err := svc.Create(ctx, Input{PatientID: patientID, Title: date, Date: date}); err != nil {
			t.Fatal(err)
		}
	}

	pid, _ := uuid.Parse(patientID)
	records, err := svc.ListByPatient(ctx, pid)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.After(records[i-1].Date) {
			t.Errorf("records out of order: %v before %v", records[i-1].Date, records[i].Date)
		}
	}
}

func TestGetIncludesGrants(t *testing.T) {
	svc, _, grants := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, Input{PatientID: uuid.NewString(), Title: "x", Date: "2026-01-01"})
	grants.byRecord[rec.ID] = []sharing.Grant{
		{ID: uuid.New(), HealthRecordID: rec.ID, Email: "friend@example.com", ViewPermission: true},
	}

	detail, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(detail.SharedWith) != 1 || detail.SharedWith[0].Email != "friend@example.com" {
		t.Errorf("sharedWith = %+v", detail.SharedWith)
	}
}

func TestUpdateRecordPartial(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, Input{
		PatientID: uuid.NewString(), Title: "Old Title", Type: "lab",
		Date: "2026-01-01", Provider: "City Lab",
	})

	newTitle := "New Title"
	got, err := svc.Update(ctx, rec.ID, UpdateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "New Title" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Type != "lab" || got.Provider != "City Lab" {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.Date.Equal(rec.Date) {
		t.Errorf("date changed: %v", got.Date)
	}
}

func TestDeleteRemovesGrantsAndRecord(t *testing.T) {
	svc, repo, grants := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, Input{PatientID: uuid.NewString(), Title: "x", Date: "2026-01-01"})
	grants.byRecord[rec.ID] = []sharing.Grant{{ID: uuid.New(), HealthRecordID: rec.ID}}

	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.records[rec.ID]; ok {
		t.Error("record still present")
	}
	if len(grants.byRecord[rec.ID]) != 0 {
		t.Error("grants still present")
	}
	if len(grants.deleted) != 1 || grants.deleted[0] != rec.ID {
		t.Errorf("deleted = %v", grants.deleted)
	}
}

func TestDeleteStopsWhenGrantCleanupFails(t *testing.T) {
	svc, repo, grants := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, Input{PatientID: uuid.NewString(), Title: "x", Date: "2026-01-01"})
	grants.deleteErr = errors.New("ledger unavailable")

	if err := svc.Delete(ctx, rec.ID); err == nil {
		t.Fatal("want error")
	}
	if _, ok := repo.records[rec.ID]; !ok {
		t.Error("record deleted despite grant cleanup failure")
	}
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate(""); err == nil {
		t.Error("empty: want error")
	}
	got, err := parseDate("2026-05-01T10:30:00Z")
	if err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	if !got.Equal(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}
}
