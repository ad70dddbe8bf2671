package service

import (
	"context"
	"testing"
	"time"

	"hotelops/internal/availability/engine"
	"hotelops/internal/availability/events"
	"hotelops/internal/availability/store"
	"hotelops/internal/availability/validator"
	"hotelops/pkg/config"
	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

type mockEngine struct {
	checkFunc      func(ctx context.Context, req model.CheckRequest) (*engine.AvailabilityResult, error)
	reserveFunc    func(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error)
	transitionFunc func(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error)
}

func (m *mockEngine) CheckAvailability(ctx context.Context, req model.CheckRequest) (*engine.AvailabilityResult, error) {
	return m.checkFunc(ctx, req)
}

func (m *mockEngine) Reserve(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error) {
	return m.reserveFunc(ctx, req)
}

func (m *mockEngine) TransitionStatus(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error) {
	return m.transitionFunc(ctx, recordID, next)
}

type mockPublisher struct {
	reserved    int
	transitions int
}

func (m *mockPublisher) BookingReserved(context.Context, *model.BookingRecord) { m.reserved++ }

func (m *mockPublisher) BookingStatusChanged(context.Context, *model.BookingRecord, model.BookingStatus) {
	m.transitions++
}

func (m *mockPublisher) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{Log: logger.NewNop()}
}

func newService(eng ReservationEngine, bookings store.BookingStore, pub events.Publisher) AvailabilityService {
	return NewAvailabilityService(eng, bookings, validator.NewRequestValidator(logger.NewNop()), pub, testConfig())
}

func validInterval() model.Interval {
	start := time.Date(2026, time.January, 10, 14, 0, 0, 0, time.UTC)
	return model.Interval{Start: start, End: start.Add(24 * time.Hour)}
}

func TestReserveSanitizesAndPublishes(t *testing.T) {
	var captured model.ReserveRequest
	eng := &mockEngine{
		reserveFunc: func(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error) {
			captured = req
			return &model.BookingRecord{
				ID:       "rec-1",
				Resource: req.Resource,
				Interval: req.Interval,
				Status:   model.StatusConfirmed,
				OwnerID:  req.OwnerID,
			}, nil
		},
	}
	pub := &mockPublisher{}
	svc := newService(eng, store.NewMemoryStore(), pub)

	rec, err := svc.Reserve(context.Background(), &model.ReserveRequest{
		Resource:   model.ResourceRef{Kind: model.KindRoom, ID: "  204  "},
		Interval:   validInterval(),
		OwnerID:    "  Guest-A  ",
		OwnerLabel: "Ms. Smith\x00",
	})
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if rec.ID != "rec-1" {
		t.Errorf("unexpected record id: %s", rec.ID)
	}
	if captured.Resource.ID != "204" {
		t.Errorf("resource id not trimmed: %q", captured.Resource.ID)
	}
	if captured.OwnerID != "guest-a" {
		t.Errorf("owner id not normalized: %q", captured.OwnerID)
	}
	if captured.OwnerLabel != "Ms. Smith" {
		t.Errorf("owner label not cleaned: %q", captured.OwnerLabel)
	}
	if pub.reserved != 1 {
		t.Errorf("expected one reserved event, got %d", pub.reserved)
	}
}

func TestReserveValidationShortCircuits(t *testing.T) {
	called := false
	eng := &mockEngine{
		reserveFunc: func(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error) {
			called = true
			return nil, nil
		},
	}
	pub := &mockPublisher{}
	svc := newService(eng, store.NewMemoryStore(), pub)

	_, err := svc.Reserve(context.Background(), &model.ReserveRequest{
		Resource: model.ResourceRef{Kind: "spa", ID: "1"},
		Interval: validInterval(),
		OwnerID:  "guest-a",
	})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if called {
		t.Error("engine must not be reached on invalid input")
	}
	if pub.reserved != 0 {
		t.Error("no event may be published for a rejected request")
	}
}

func TestReserveConflictPublishesNothing(t *testing.T) {
	eng := &mockEngine{
		reserveFunc: func(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error) {
			return nil, apperrors.Conflict("interval overlaps an existing booking")
		},
	}
	pub := &mockPublisher{}
	svc := newService(eng, store.NewMemoryStore(), pub)

	_, err := svc.Reserve(context.Background(), &model.ReserveRequest{
		Resource: model.ResourceRef{Kind: model.KindRoom, ID: "204"},
		Interval: validInterval(),
		OwnerID:  "guest-a",
	})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if pub.reserved != 0 {
		t.Error("conflict must not publish an event")
	}
}

func TestTransitionPublishesOnChangeOnly(t *testing.T) {
	bookings := store.NewMemoryStore()
	seeded, err := bookings.Persist(context.Background(), &model.BookingRecord{
		Resource: model.ResourceRef{Kind: model.KindEmployeeLeave, ID: "emp-7"},
		Interval: validInterval(),
		Status:   model.StatusCancelled,
		OwnerID:  "emp-7",
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	eng := &mockEngine{
		transitionFunc: func(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error) {
			rec := *seeded
			return &rec, nil
		},
	}
	pub := &mockPublisher{}
	svc := newService(eng, bookings, pub)

	// cancelled -> cancelled is a no-op: same status back, no event.
	rec, err := svc.Transition(context.Background(), seeded.ID, &model.TransitionRequest{Status: model.StatusCancelled})
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if rec.Status != model.StatusCancelled {
		t.Errorf("unexpected status: %s", rec.Status)
	}
	if pub.transitions != 0 {
		t.Errorf("no-op transition must not publish, got %d events", pub.transitions)
	}

	eng.transitionFunc = func(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error) {
		rec := *seeded
		rec.Status = next
		return &rec, nil
	}
	seeded.Status = model.StatusPending
	if _, err := bookings.Persist(context.Background(), seeded); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}

	if _, err := svc.Transition(context.Background(), seeded.ID, &model.TransitionRequest{Status: model.StatusConfirmed}); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if pub.transitions != 1 {
		t.Errorf("expected one status event, got %d", pub.transitions)
	}
}

func TestGetByIDErrors(t *testing.T) {
	svc := newService(&mockEngine{}, store.NewMemoryStore(), &mockPublisher{})

	if _, err := svc.GetByID(context.Background(), ""); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty id, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "missing"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestListForResourceValidation(t *testing.T) {
	svc := newService(&mockEngine{}, store.NewMemoryStore(), &mockPublisher{})

	if _, _, err := svc.ListForResource(context.Background(), model.ResourceRef{Kind: "spa", ID: "1"}, 10, 0); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for unknown kind, got %v", err)
	}
	if _, _, err := svc.ListForResource(context.Background(), model.ResourceRef{Kind: model.KindRoom, ID: "   "}, 10, 0); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty id, got %v", err)
	}

	records, total, err := svc.ListForResource(context.Background(), model.ResourceRef{Kind: model.KindRoom, ID: "204"}, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(records) != 0 {
		t.Errorf("expected empty listing, got %d/%d", len(records), total)
	}
}
