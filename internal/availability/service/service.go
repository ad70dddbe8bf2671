// Package service is the application layer over the reservation engine:
// request validation, input sanitization, read-side lookups, and event
// publication. Conflict decisions themselves belong to the engine.
package service

import (
	"context"
	"errors"

	"hotelops/internal/availability/engine"
	availerrors "hotelops/internal/availability/errors"
	"hotelops/internal/availability/events"
	"hotelops/internal/availability/store"
	"hotelops/internal/availability/validator"
	"hotelops/pkg/config"
	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/model"
	"hotelops/pkg/sanitizer"
)

type AvailabilityService interface {
	Check(ctx context.Context, req *model.CheckRequest) (*engine.AvailabilityResult, error)
	Reserve(ctx context.Context, req *model.ReserveRequest) (*model.BookingRecord, error)
	GetByID(ctx context.Context, id string) (*model.BookingRecord, error)
	Transition(ctx context.Context, id string, req *model.TransitionRequest) (*model.BookingRecord, error)
	ListForResource(ctx context.Context, ref model.ResourceRef, limit, offset int) ([]model.BookingRecord, int64, error)
}

// ReservationEngine is the slice of the engine the service depends on.
type ReservationEngine interface {
	CheckAvailability(ctx context.Context, req model.CheckRequest) (*engine.AvailabilityResult, error)
	Reserve(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error)
	TransitionStatus(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error)
}

type availabilityService struct {
	engine    ReservationEngine
	bookings  store.BookingStore
	validator *validator.RequestValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewAvailabilityService(
	eng ReservationEngine,
	bookings store.BookingStore,
	v *validator.RequestValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		engine:    eng,
		bookings:  bookings,
		validator: v,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *availabilityService) Check(ctx context.Context, req *model.CheckRequest) (*engine.AvailabilityResult, error) {
	s.sanitizeCheck(req)
	if err := s.validator.ValidateCheck(req); err != nil {
		return nil, apperrors.Validation("Invalid availability check request", map[string]any{"errors": err.Error()})
	}

	result, err := s.engine.CheckAvailability(ctx, *req)
	if err != nil {
		s.cfg.Log.Error("Availability check failed",
			"resource", req.Resource.Key(),
			"error", err,
		)
		return nil, err
	}
	return result, nil
}

func (s *availabilityService) Reserve(ctx context.Context, req *model.ReserveRequest) (*model.BookingRecord, error) {
	s.sanitizeReserve(req)
	if err := s.validator.ValidateReserve(req); err != nil {
		return nil, apperrors.Validation("Invalid reservation request", map[string]any{"errors": err.Error()})
	}

	record, err := s.engine.Reserve(ctx, *req)
	if err != nil {
		s.cfg.Log.Error("Reservation failed",
			"resource", req.Resource.Key(),
			"owner_id", req.OwnerID,
			"error", err,
		)
		return nil, err
	}

	s.publisher.BookingReserved(ctx, record)

	s.cfg.Log.Info("Reservation created successfully",
		"id", record.ID,
		"resource", record.Resource.Key(),
		"status", string(record.Status),
	)
	return record, nil
}

func (s *availabilityService) GetByID(ctx context.Context, id string) (*model.BookingRecord, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	record, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, availerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Store("Failed to retrieve booking", err)
	}

	return record, nil
}

func (s *availabilityService) Transition(ctx context.Context, id string, req *model.TransitionRequest) (*model.BookingRecord, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateTransition(req); err != nil {
		return nil, apperrors.Validation("Invalid status transition request", map[string]any{"errors": err.Error()})
	}

	before, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record, err := s.engine.TransitionStatus(ctx, id, req.Status)
	if err != nil {
		s.cfg.Log.Error("Status transition failed",
			"id", id,
			"target_status", string(req.Status),
			"error", err,
		)
		return nil, err
	}

	if record.Status != before.Status {
		s.publisher.BookingStatusChanged(ctx, record, before.Status)
	}

	return record, nil
}

func (s *availabilityService) ListForResource(ctx context.Context, ref model.ResourceRef, limit, offset int) ([]model.BookingRecord, int64, error) {
	ref.ID = sanitizer.TrimAndNormalize(ref.ID)
	if !ref.Kind.Valid() {
		return nil, 0, apperrors.InvalidInput("Unknown resource kind: " + string(ref.Kind))
	}
	if ref.ID == "" {
		return nil, 0, apperrors.InvalidInput("Resource ID cannot be empty")
	}

	records, total, err := s.bookings.ListFor(ctx, ref, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Store("Failed to list bookings", err)
	}
	return records, total, nil
}

func (s *availabilityService) sanitizeCheck(req *model.CheckRequest) {
	req.Resource.ID = sanitizer.TrimAndNormalize(req.Resource.ID)
	req.ExcludeID = sanitizer.TrimAndNormalize(req.ExcludeID)
}

func (s *availabilityService) sanitizeReserve(req *model.ReserveRequest) {
	req.Resource.ID = sanitizer.TrimAndNormalize(req.Resource.ID)
	req.ExcludeID = sanitizer.TrimAndNormalize(req.ExcludeID)
	req.OwnerID = sanitizer.NormalizeOwnerID(req.OwnerID)
	req.OwnerLabel = sanitizer.NormalizeOwnerLabel(req.OwnerLabel)
}
