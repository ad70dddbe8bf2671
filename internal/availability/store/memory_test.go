package store

import (
	"context"
	"errors"
	"testing"
	"time"

	availerrors "hotelops/internal/availability/errors"
	"hotelops/pkg/model"
)

func testRecord(ref model.ResourceRef, status model.BookingStatus, start, end time.Time) *model.BookingRecord {
	return &model.BookingRecord{
		Resource: ref,
		Interval: model.Interval{Start: start, End: end},
		Status:   status,
		OwnerID:  "guest-1",
	}
}

func TestMemoryStorePersistAssignsIDAndVersion(t *testing.T) {
	s := NewMemoryStore()
	ref := model.ResourceRef{Kind: model.KindRoom, ID: "101"}
	base := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)

	stored, err := s.Persist(context.Background(), testRecord(ref, model.StatusConfirmed, base, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected assigned id")
	}
	if stored.Version != 1 {
		t.Errorf("expected version 1, got %d", stored.Version)
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestMemoryStorePersistUpdateIncrementsVersion(t *testing.T) {
	s := NewMemoryStore()
	ref := model.ResourceRef{Kind: model.KindRoom, ID: "101"}
	base := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)

	stored, err := s.Persist(context.Background(), testRecord(ref, model.StatusConfirmed, base, base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored.Status = model.StatusCancelled
	updated, err := s.Persist(context.Background(), stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("expected version 2, got %d", updated.Version)
	}
	if updated.CreatedAt != stored.CreatedAt {
		t.Error("update must preserve created_at")
	}
}

func TestMemoryStorePersistUnknownIDFails(t *testing.T) {
	s := NewMemoryStore()
	ref := model.ResourceRef{Kind: model.KindRoom, ID: "101"}
	base := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)

	rec := testRecord(ref, model.StatusConfirmed, base, base.Add(time.Hour))
	rec.ID = "missing"

	if _, err := s.Persist(context.Background(), rec); !errors.Is(err, availerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreActiveRecordsFiltering(t *testing.T) {
	s := NewMemoryStore()
	ref := model.ResourceRef{Kind: model.KindRoom, ID: "101"}
	otherRef := model.ResourceRef{Kind: model.KindRoom, ID: "102"}
	base := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)

	statuses := []model.BookingStatus{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusCancelled,
		model.StatusRejected,
		model.StatusCompleted,
	}
	for i, status := range statuses {
		start := base.Add(time.Duration(i) * 2 * time.Hour)
		if _, err := s.Persist(context.Background(), testRecord(ref, status, start, start.Add(time.Hour))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.Persist(context.Background(), testRecord(otherRef, model.StatusConfirmed, base, base.Add(time.Hour))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, err := s.ActiveRecordsFor(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active records, got %d", len(active))
	}
	for _, rec := range active {
		if !rec.Status.Active() {
			t.Errorf("inactive record %s returned by ActiveRecordsFor", rec.Status)
		}
		if rec.Resource != ref {
			t.Errorf("record for wrong resource returned: %v", rec.Resource)
		}
	}
}

func TestMemoryStoreListForPagination(t *testing.T) {
	s := NewMemoryStore()
	ref := model.ResourceRef{Kind: model.KindTrainingSlot, ID: "onboarding"}
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		start := base.AddDate(0, 0, i)
		if _, err := s.Persist(context.Background(), testRecord(ref, model.StatusConfirmed, start, start.Add(time.Hour))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	page, total, err := s.ListFor(context.Background(), ref, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 records in page, got %d", len(page))
	}
	// Newest interval first.
	if !page[0].Interval.Start.After(page[1].Interval.Start) {
		t.Error("expected newest-first ordering")
	}

	tail, _, err := s.ListFor(context.Background(), ref, 10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tail) != 1 {
		t.Errorf("expected 1 record in final page, got %d", len(tail))
	}

	empty, _, err := s.ListFor(context.Background(), ref, 10, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(empty))
	}
}
