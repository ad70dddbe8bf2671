// Package engine implements conflict-checked reservation of resources. All
// writes to a resource's booking set pass through a per-resource guard, so
// check-and-reserve is atomic per resource: two racing reservations for the
// same room resolve to exactly one winner.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	availerrors "hotelops/internal/availability/errors"
	"hotelops/internal/availability/guard"
	"hotelops/internal/availability/interval"
	"hotelops/internal/availability/policy"
	"hotelops/internal/availability/store"
	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/logger"
	"hotelops/pkg/model"
)

// Conflict describes one existing booking that blocks a candidate interval.
type Conflict struct {
	RecordID     string              `json:"record_id"`
	Interval     model.Interval      `json:"interval"`
	Status       model.BookingStatus `json:"status"`
	OwnerID      string              `json:"owner_id"`
	CapacityUsed int                 `json:"capacity_used"`
}

// AvailabilityResult is the outcome of a conflict check. For
// capacity-bounded resources Capacity and Remaining report the declared
// capacity and what is left of it across the candidate interval; both are
// zero for exclusive resources.
type AvailabilityResult struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
	Capacity  int        `json:"capacity,omitempty"`
	Remaining int        `json:"remaining,omitempty"`
}

type Engine struct {
	store    store.BookingStore
	guard    guard.Guard
	policies *policy.Set
	log      *logger.Logger

	// now is swappable for lead-time tests.
	now func() time.Time
}

func New(bookings store.BookingStore, g guard.Guard, policies *policy.Set, log *logger.Logger) *Engine {
	return &Engine{
		store:    bookings,
		guard:    g,
		policies: policies,
		log:      log,
		now:      time.Now,
	}
}

// CheckAvailability judges a candidate interval against the resource's
// active bookings. It runs inside the resource's guarded section, so the
// answer is ordered with respect to in-flight reservations on the same
// resource. A positive answer can still be invalidated by a later write;
// callers who intend to write must use Reserve.
func (e *Engine) CheckAvailability(ctx context.Context, req model.CheckRequest) (*AvailabilityResult, error) {
	if !req.Resource.Kind.Valid() || req.Resource.ID == "" {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid resource reference: %s", req.Resource.Key()))
	}
	if !interval.IsValid(req.Interval) {
		return nil, apperrors.InvalidInterval("interval start must be strictly before end")
	}

	pol, err := e.policies.For(req.Resource.Kind)
	if err != nil {
		return nil, err
	}

	requested := requestedCapacity(req.RequestedCapacity, pol.Mode)

	var result *AvailabilityResult
	err = e.guard.WithExclusiveAccess(ctx, req.Resource, func(ctx context.Context) error {
		result, err = e.evaluate(ctx, req.Resource, req.Interval, req.ExcludeID, requested, pol)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reserve atomically checks the candidate interval and persists a booking
// record when it is free. The check and the write run inside the resource's
// guarded section; on conflict nothing is written and the blocking records
// travel in the error details.
func (e *Engine) Reserve(ctx context.Context, req model.ReserveRequest) (*model.BookingRecord, error) {
	if !req.Resource.Kind.Valid() || req.Resource.ID == "" {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid resource reference: %s", req.Resource.Key()))
	}

	pol, err := e.policies.For(req.Resource.Kind)
	if err != nil {
		return nil, err
	}

	if err := e.validateCandidate(req.Interval, pol); err != nil {
		return nil, err
	}

	requested := requestedCapacity(req.RequestedCapacity, pol.Mode)

	var stored *model.BookingRecord
	err = e.guard.WithExclusiveAccess(ctx, req.Resource, func(ctx context.Context) error {
		if req.ExcludeID != "" {
			existing, err := e.store.FindByID(ctx, req.ExcludeID)
			if err != nil {
				return storeLookupError(req.ExcludeID, err)
			}
			if !existing.Status.Active() {
				return apperrors.IllegalTransition(string(existing.Status), string(pol.InitialStatus))
			}
		}

		result, err := e.evaluate(ctx, req.Resource, req.Interval, req.ExcludeID, requested, pol)
		if err != nil {
			return err
		}
		if !result.Available {
			return conflictError(result, pol.Mode)
		}

		record := &model.BookingRecord{
			ID:           req.ExcludeID,
			Resource:     req.Resource,
			Interval:     req.Interval,
			Status:       pol.InitialStatus,
			OwnerID:      req.OwnerID,
			OwnerLabel:   req.OwnerLabel,
			CapacityUsed: requested,
		}

		stored, err = e.store.Persist(ctx, record)
		if err != nil {
			return apperrors.Store("failed to persist booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("reservation created",
		"record_id", stored.ID,
		"resource", stored.Resource.Key(),
		"status", string(stored.Status),
		"start", stored.Interval.Start,
		"end", stored.Interval.End,
	)
	return stored, nil
}

// TransitionStatus moves a booking to a new lifecycle status. The record is
// re-read inside the guarded section so the decision is made against the
// current state, not the caller's stale view. Cancelling an
// already-cancelled booking succeeds without a write.
func (e *Engine) TransitionStatus(ctx context.Context, recordID string, next model.BookingStatus) (*model.BookingRecord, error) {
	current, err := e.store.FindByID(ctx, recordID)
	if err != nil {
		return nil, storeLookupError(recordID, err)
	}

	var result *model.BookingRecord
	err = e.guard.WithExclusiveAccess(ctx, current.Resource, func(ctx context.Context) error {
		record, err := e.store.FindByID(ctx, recordID)
		if err != nil {
			return storeLookupError(recordID, err)
		}

		noop, err := policy.ValidateTransition(record.Status, next)
		if err != nil {
			return err
		}
		if noop {
			result = record
			return nil
		}

		record.Status = next
		result, err = e.store.Persist(ctx, record)
		if err != nil {
			return apperrors.Store("failed to persist status transition", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("reservation status changed",
		"record_id", result.ID,
		"resource", result.Resource.Key(),
		"status", string(result.Status),
	)
	return result, nil
}

// evaluate computes the availability result against the store's active
// records. excludeID drops the caller's own record so an update-in-place
// does not conflict with itself.
func (e *Engine) evaluate(ctx context.Context, ref model.ResourceRef, candidate model.Interval, excludeID string, requested int, pol policy.KindPolicy) (*AvailabilityResult, error) {
	active, err := e.store.ActiveRecordsFor(ctx, ref)
	if err != nil {
		return nil, apperrors.Store("failed to load active bookings", err)
	}

	var overlapping []Conflict
	used := 0
	for _, rec := range active {
		if excludeID != "" && rec.ID == excludeID {
			continue
		}
		if !interval.Overlaps(rec.Interval, candidate) {
			continue
		}
		overlapping = append(overlapping, Conflict{
			RecordID:     rec.ID,
			Interval:     rec.Interval,
			Status:       rec.Status,
			OwnerID:      rec.OwnerID,
			CapacityUsed: rec.CapacityUsed,
		})
		used += rec.CapacityUsed
	}

	switch pol.Mode {
	case policy.ModeCapacityBounded:
		capacity, err := e.policies.CapacityOf(ctx, ref)
		if err != nil {
			return nil, err
		}
		remaining := capacity - used
		if remaining < 0 {
			remaining = 0
		}
		result := &AvailabilityResult{
			Available: used+requested <= capacity,
			Capacity:  capacity,
			Remaining: remaining,
		}
		if !result.Available {
			result.Conflicts = overlapping
		}
		return result, nil
	default:
		return &AvailabilityResult{
			Available: len(overlapping) == 0,
			Conflicts: overlapping,
		}, nil
	}
}

// validateCandidate applies interval well-formedness plus the kind's
// duration and lead-time limits.
func (e *Engine) validateCandidate(candidate model.Interval, pol policy.KindPolicy) error {
	if !interval.IsValid(candidate) {
		return apperrors.InvalidInterval("interval start must be strictly before end")
	}
	if pol.MaxDuration > 0 && interval.Duration(candidate) > pol.MaxDuration {
		return apperrors.Validation(
			fmt.Sprintf("booking exceeds the maximum duration of %s", pol.MaxDuration),
			map[string]any{"max_duration": pol.MaxDuration.String()},
		)
	}
	if pol.MinLeadTime > 0 && candidate.Start.Before(e.now().Add(pol.MinLeadTime)) {
		return apperrors.Validation(
			fmt.Sprintf("booking must be made at least %s in advance", pol.MinLeadTime),
			map[string]any{"min_lead_time": pol.MinLeadTime.String()},
		)
	}
	return nil
}

// requestedCapacity defaults the requested quantity to 1 for
// capacity-bounded kinds. Exclusive kinds have no capacity dimension and
// store zero.
func requestedCapacity(requested int, mode policy.ConflictMode) int {
	if mode != policy.ModeCapacityBounded {
		return 0
	}
	if requested < 1 {
		return 1
	}
	return requested
}

func conflictError(result *AvailabilityResult, mode policy.ConflictMode) error {
	if mode == policy.ModeCapacityBounded {
		err := apperrors.CapacityExceeded("interval exceeds the resource's remaining capacity", result.Remaining)
		err.Details["conflicts"] = result.Conflicts
		return err
	}
	return apperrors.Conflict("interval overlaps an existing booking").
		WithDetails(map[string]any{"conflicts": result.Conflicts})
}

func storeLookupError(id string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, availerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("booking", id)
	}
	if errors.Is(err, availerrors.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("invalid booking id: %s", id))
	}
	return apperrors.Store("failed to load booking", err)
}
