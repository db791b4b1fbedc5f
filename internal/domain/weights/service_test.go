package weights

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"baby-tracker-go/internal/domain/apperr"
	"baby-tracker-go/internal/domain/membership"
)

type fakeGate struct {
	members map[string]membership.Role
}

func (g fakeGate) RequireAnyRole(ctx context.Context, userID, babyID string) (membership.Role, error) {
	role, ok := g.members[babyID+"/"+userID]
	if !ok {
		return "", membership.ErrBabyNotFound
	}
	return role, nil
}

type fakeWeightRepo struct {
	entries   map[string]*Entry
	birthDate time.Time
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{
		entries:   make(map[string]*Entry),
		birthDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeWeightRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeWeightRepo) ListEntries(ctx context.Context, babyID string) ([]EntryRecord, error) {
	records := make([]EntryRecord, 0)
	for _, entry := range r.entries {
		if entry.BabyID == babyID {
			records = append(records, EntryRecord{Entry: *entry, RecordedByName: "Parent", BirthDate: r.birthDate})
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].MeasuredAt.Before(records[j].MeasuredAt) })
	return records, nil
}

func (r *fakeWeightRepo) GetEntry(ctx context.Context, babyID, entryID string) (*Entry, error) {
	entry, ok := r.entries[entryID]
	if !ok || entry.BabyID != babyID {
		return nil, ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeWeightRepo) CreateEntry(ctx context.Context, entry *Entry) error {
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeWeightRepo) UpdateEntry(ctx context.Context, entry *Entry) error {
	copied := *entry
	r.entries[entry.ID] = &copied
	return nil
}

func (r *fakeWeightRepo) DeleteEntry(ctx context.Context, babyID, entryID string) (bool, error) {
	entry, ok := r.entries[entryID]
	if !ok || entry.BabyID != babyID {
		return false, nil
	}
	delete(r.entries, entryID)
	return true, nil
}

func newTestService() (*Service, *fakeWeightRepo) {
	repo := newFakeWeightRepo()
	gate := fakeGate{members: map[string]membership.Role{
		"baby-1/owner":  membership.RoleOwner,
		"baby-1/parent": membership.RoleParent,
	}}
	return NewService(repo, gate), repo
}

func TestCreateEntryWeightBounds(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		grams int
		valid bool
	}{
		{grams: 99, valid: false},
		{grams: 100, valid: true},
		{grams: 50000, valid: true},
		{grams: 50001, valid: false},
		{grams: 0, valid: false},
	}

	for _, tc := range cases {
		_, err := service.CreateEntry(ctx, CreateEntryInput{
			UserID:      "owner",
			BabyID:      "baby-1",
			WeightGrams: tc.grams,
			MeasuredAt:  "2024-02-01",
		})
		if tc.valid && err != nil {
			t.Fatalf("grams=%d: unexpected error: %v", tc.grams, err)
		}
		if !tc.valid && apperr.KindOf(err) != apperr.KindInvalidInput {
			t.Fatalf("grams=%d: expected invalid_input, got %v", tc.grams, err)
		}
	}
}

func TestCreateEntryRejectsBadDate(t *testing.T) {
	service, _ := newTestService()

	for _, date := range []string{"", "2024-13-01", "01/02/2024", "2024-02-30"} {
		_, err := service.CreateEntry(context.Background(), CreateEntryInput{
			UserID:      "owner",
			BabyID:      "baby-1",
			WeightGrams: 3500,
			MeasuredAt:  date,
		})
		if apperr.KindOf(err) != apperr.KindInvalidInput {
			t.Fatalf("date %q: expected invalid_input, got %v", date, err)
		}
	}
}

func TestCreateEntryRequiresMembership(t *testing.T) {
	service, repo := newTestService()

	_, err := service.CreateEntry(context.Background(), CreateEntryInput{
		UserID:      "stranger",
		BabyID:      "baby-1",
		WeightGrams: 3500,
		MeasuredAt:  "2024-02-01",
	})
	if !errors.Is(err, membership.ErrBabyNotFound) {
		t.Fatalf("expected baby not found, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(repo.entries))
	}
}

func TestParentCanRecordEntries(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.CreateEntry(context.Background(), CreateEntryInput{
		UserID:      "parent",
		BabyID:      "baby-1",
		WeightGrams: 4200,
		MeasuredAt:  "2024-02-01",
		Notes:       "  after bath ",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if entry.CreatedBy != "parent" {
		t.Fatalf("expected created by parent, got %q", entry.CreatedBy)
	}
	if entry.Notes == nil || *entry.Notes != "after bath" {
		t.Fatalf("expected trimmed note, got %v", entry.Notes)
	}
}

func TestUpdateEntryNotesOnlyKeepsMeasurement(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, CreateEntryInput{
		UserID:      "owner",
		BabyID:      "baby-1",
		WeightGrams: 3600,
		MeasuredAt:  "2024-01-15",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	note := "doctor visit"
	updated, err := service.UpdateEntry(ctx, UpdateEntryInput{
		UserID:  "parent",
		BabyID:  "baby-1",
		EntryID: created.ID,
		Notes:   &note,
	})
	if err != nil {
		t.Fatalf("update entry: %v", err)
	}
	if updated.WeightGrams != 3600 {
		t.Fatalf("expected weight kept, got %d", updated.WeightGrams)
	}
	if !updated.MeasuredAt.Equal(created.MeasuredAt) {
		t.Fatalf("expected date kept, got %v", updated.MeasuredAt)
	}
	if updated.Notes == nil || *updated.Notes != note {
		t.Fatalf("expected note %q, got %v", note, updated.Notes)
	}

	empty := ""
	cleared, err := service.UpdateEntry(ctx, UpdateEntryInput{
		UserID:  "owner",
		BabyID:  "baby-1",
		EntryID: created.ID,
		Notes:   &empty,
	})
	if err != nil {
		t.Fatalf("clear note: %v", err)
	}
	if cleared.Notes != nil {
		t.Fatalf("expected note cleared, got %q", *cleared.Notes)
	}
}

func TestUpdateEntryValidatesWeight(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, CreateEntryInput{
		UserID:      "owner",
		BabyID:      "baby-1",
		WeightGrams: 3600,
		MeasuredAt:  "2024-01-15",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	for _, grams := range []int{0, 99, 50001} {
		value := grams
		_, err := service.UpdateEntry(ctx, UpdateEntryInput{
			UserID:      "owner",
			BabyID:      "baby-1",
			EntryID:     created.ID,
			WeightGrams: &value,
		})
		if apperr.KindOf(err) != apperr.KindInvalidInput {
			t.Fatalf("grams=%d: expected invalid_input, got %v", grams, err)
		}
	}
	if repo.entries[created.ID].WeightGrams != 3600 {
		t.Fatalf("expected stored weight untouched, got %d", repo.entries[created.ID].WeightGrams)
	}
}

func TestUpdateEntryScopedToBaby(t *testing.T) {
	service, repo := newTestService()
	repo.entries["other"] = &Entry{ID: "other", BabyID: "baby-2", WeightGrams: 3000}

	weight := 3100
	_, err := service.UpdateEntry(context.Background(), UpdateEntryInput{
		UserID:      "owner",
		BabyID:      "baby-1",
		EntryID:     "other",
		WeightGrams: &weight,
	})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected entry not found, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.CreateEntry(ctx, CreateEntryInput{
		UserID:      "owner",
		BabyID:      "baby-1",
		WeightGrams: 3600,
		MeasuredAt:  "2024-01-15",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := service.DeleteEntry(ctx, "stranger", "baby-1", created.ID); !errors.Is(err, membership.ErrBabyNotFound) {
		t.Fatalf("expected baby not found for stranger, got %v", err)
	}
	if err := service.DeleteEntry(ctx, "parent", "baby-1", created.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, ok := repo.entries[created.ID]; ok {
		t.Fatalf("expected entry removed")
	}
	if err := service.DeleteEntry(ctx, "parent", "baby-1", created.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected entry not found on second delete, got %v", err)
	}
}

func TestListEntriesTimeline(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for _, input := range []CreateEntryInput{
		{WeightGrams: 4000, MeasuredAt: "2024-01-31"},
		{WeightGrams: 3500, MeasuredAt: "2024-01-01"},
		{WeightGrams: 3900, MeasuredAt: "2024-01-11"},
	} {
		input.UserID = "owner"
		input.BabyID = "baby-1"
		if _, err := service.CreateEntry(ctx, input); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	views, err := service.ListEntries(ctx, "parent", "baby-1")
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(views))
	}

	wantAges := []int{0, 10, 30}
	for i, view := range views {
		if view.AgeDays != wantAges[i] {
			t.Fatalf("entry %d: expected age %d, got %d", i, wantAges[i], view.AgeDays)
		}
	}
	if views[0].DeltaGrams != nil {
		t.Fatalf("expected no delta for first entry")
	}
	if views[1].DeltaGrams == nil || *views[1].DeltaGrams != 400 {
		t.Fatalf("expected delta 400, got %v", views[1].DeltaGrams)
	}
	if views[2].DeltaGrams == nil || *views[2].DeltaGrams != 100 {
		t.Fatalf("expected delta 100, got %v", views[2].DeltaGrams)
	}

	if _, err := service.ListEntries(ctx, "stranger", "baby-1"); !errors.Is(err, membership.ErrBabyNotFound) {
		t.Fatalf("expected baby not found for stranger, got %v", err)
	}
}
