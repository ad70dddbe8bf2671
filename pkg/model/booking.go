package model

import (
	"time"
)

// BookingStatus is the unified lifecycle status across all resource kinds.
// A given kind only ever uses a subset (shifts never see "pending", leave
// requests start there).
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the status counts toward conflict checks.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected || s == StatusCompleted
}

// Interval is a half-open time range [Start, End). An interval ending
// exactly when another begins does not overlap it.
type Interval struct {
	Start time.Time `json:"start" bson:"start" validate:"required"`
	End   time.Time `json:"end" bson:"end" validate:"required"`
}

// BookingRecord is the reserved unit: one resource, one interval, one owner.
// Version is a monotonically increasing counter maintained by the store; it
// is reported to callers for conflict diagnostics, it is not the
// concurrency-control mechanism.
type BookingRecord struct {
	ID           string        `json:"id,omitempty" bson:"_id,omitempty"`
	Resource     ResourceRef   `json:"resource" bson:"resource" validate:"required"`
	Interval     Interval      `json:"interval" bson:"interval" validate:"required"`
	Status       BookingStatus `json:"status" bson:"status" validate:"required,booking_status"`
	OwnerID      string        `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=100"`
	OwnerLabel   string        `json:"owner_label,omitempty" bson:"owner_label,omitempty" validate:"omitempty,max=200"`
	CapacityUsed int           `json:"capacity_used" bson:"capacity_used" validate:"min=0,max=10000"`
	Version      int64         `json:"version" bson:"version"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// CheckRequest asks whether a candidate interval is free for a resource.
// ExcludeID names the caller's own record in the update-in-place case so a
// booking does not conflict with itself.
type CheckRequest struct {
	Resource          ResourceRef `json:"resource" validate:"required"`
	Interval          Interval    `json:"interval" validate:"required"`
	ExcludeID         string      `json:"exclude_id,omitempty" validate:"omitempty,max=100"`
	RequestedCapacity int         `json:"requested_capacity,omitempty" validate:"min=0,max=10000"`
}

// ReserveRequest reserves an interval if it is free.
type ReserveRequest struct {
	Resource          ResourceRef `json:"resource" validate:"required"`
	Interval          Interval    `json:"interval" validate:"required"`
	OwnerID           string      `json:"owner_id" validate:"required,min=1,max=100"`
	OwnerLabel        string      `json:"owner_label,omitempty" validate:"omitempty,max=200"`
	ExcludeID         string      `json:"exclude_id,omitempty" validate:"omitempty,max=100"`
	RequestedCapacity int         `json:"requested_capacity,omitempty" validate:"min=0,max=10000"`
}

// TransitionRequest moves a record to a new lifecycle status.
type TransitionRequest struct {
	Status BookingStatus `json:"status" validate:"required,booking_status"`
}
