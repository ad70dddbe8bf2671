// Package policy carries the per-resource-kind rules layered on top of the
// generic availability engine: conflict mode, capacity lookup, initial
// booking status, duration and lead-time limits, and the one explicit state
// machine in the system (the booking lifecycle).
package policy

import (
	"context"
	"fmt"
	"time"

	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/model"
)

// ConflictMode decides how overlapping active bookings are judged.
type ConflictMode string

const (
	// ModeExclusive rejects any overlap: one active booking per instant.
	ModeExclusive ConflictMode = "exclusive"
	// ModeCapacityBounded allows overlap while the summed capacity of
	// overlapping bookings stays within the resource's declared capacity.
	ModeCapacityBounded ConflictMode = "capacity_bounded"
)

// CapacitySource resolves the declared capacity of a capacity-pooled
// resource. Backed by the domain layer (an installation's participant
// limit); the engine never caches the result.
type CapacitySource interface {
	CapacityOf(ctx context.Context, ref model.ResourceRef) (int, error)
}

// CapacitySourceFunc adapts a function to the CapacitySource interface.
type CapacitySourceFunc func(ctx context.Context, ref model.ResourceRef) (int, error)

func (f CapacitySourceFunc) CapacityOf(ctx context.Context, ref model.ResourceRef) (int, error) {
	return f(ctx, ref)
}

// FixedCapacity returns a source that reports the same capacity for every
// resource. Useful as a default and in tests.
func FixedCapacity(capacity int) CapacitySource {
	return CapacitySourceFunc(func(context.Context, model.ResourceRef) (int, error) {
		return capacity, nil
	})
}

// KindPolicy is the rule set for one resource kind.
type KindPolicy struct {
	Mode          ConflictMode
	InitialStatus model.BookingStatus
	// MaxDuration caps a single booking's length; zero means unlimited.
	MaxDuration time.Duration
	// MinLeadTime is how far ahead of its start a booking must be made;
	// zero means no lead-time requirement.
	MinLeadTime time.Duration
}

// Limits configures the per-kind duration and lead-time rules.
type Limits struct {
	MaxRoomStay      time.Duration
	MaxShiftLength   time.Duration
	TrainingLeadTime time.Duration
}

// Set maps every resource kind to its policy plus the shared capacity
// source.
type Set struct {
	kinds    map[model.ResourceKind]KindPolicy
	capacity CapacitySource
}

// NewSet builds the standard policy table: every kind is exclusive except
// installations, which pool capacity; leave requests start pending and wait
// for an approval decision, everything else confirms on reserve.
func NewSet(capacity CapacitySource, limits Limits) *Set {
	return &Set{
		capacity: capacity,
		kinds: map[model.ResourceKind]KindPolicy{
			model.KindRoom: {
				Mode:          ModeExclusive,
				InitialStatus: model.StatusConfirmed,
				MaxDuration:   limits.MaxRoomStay,
			},
			model.KindInstallation: {
				Mode:          ModeCapacityBounded,
				InitialStatus: model.StatusConfirmed,
			},
			model.KindEmployeeShift: {
				Mode:          ModeExclusive,
				InitialStatus: model.StatusConfirmed,
				MaxDuration:   limits.MaxShiftLength,
			},
			model.KindEmployeeLeave: {
				Mode:          ModeExclusive,
				InitialStatus: model.StatusPending,
			},
			model.KindTrainingSlot: {
				Mode:          ModeExclusive,
				InitialStatus: model.StatusConfirmed,
				MinLeadTime:   limits.TrainingLeadTime,
			},
		},
	}
}

// For returns the policy for a kind.
func (s *Set) For(kind model.ResourceKind) (KindPolicy, error) {
	p, ok := s.kinds[kind]
	if !ok {
		return KindPolicy{}, apperrors.InvalidInput(fmt.Sprintf("unknown resource kind: %s", kind))
	}
	return p, nil
}

// CapacityOf resolves the declared capacity for a capacity-bounded resource.
func (s *Set) CapacityOf(ctx context.Context, ref model.ResourceRef) (int, error) {
	capacity, err := s.capacity.CapacityOf(ctx, ref)
	if err != nil {
		return 0, apperrors.Internal("failed to resolve resource capacity", err)
	}
	if capacity < 1 {
		return 0, apperrors.Internal(fmt.Sprintf("resource %s declares capacity %d", ref.Key(), capacity), nil)
	}
	return capacity, nil
}

// legalTransitions is the lifecycle table. Pending bookings are decided
// (confirmed or rejected); confirmed bookings end (cancelled or completed).
// Terminal states admit nothing.
var legalTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.StatusPending:   {model.StatusConfirmed, model.StatusRejected},
	model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
}

// ValidateTransition checks the lifecycle table. Cancelling an
// already-cancelled record is a no-op success, reported via the noop return
// so callers can skip the write.
func ValidateTransition(from, to model.BookingStatus) (noop bool, err error) {
	if !to.Valid() {
		return false, apperrors.InvalidInput(fmt.Sprintf("unknown booking status: %s", to))
	}
	if from == model.StatusCancelled && to == model.StatusCancelled {
		return true, nil
	}
	for _, allowed := range legalTransitions[from] {
		if to == allowed {
			return false, nil
		}
	}
	return false, apperrors.IllegalTransition(string(from), string(to))
}
