// Package store defines durable storage of booking records. The engine
// depends only on the BookingStore interface; mongo and in-memory
// implementations live below it.
package store

import (
	"context"

	"hotelops/pkg/model"
)

// BookingStore is the persistence boundary of the availability engine.
//
// ActiveRecordsFor must return every record counting toward conflict checks
// (status pending or confirmed) for the resource, and the read must observe
// writes committed by earlier guarded sections; a stale read here is the
// primary correctness hazard.
type BookingStore interface {
	ActiveRecordsFor(ctx context.Context, ref model.ResourceRef) ([]model.BookingRecord, error)

	// Persist inserts the record when its ID is empty, otherwise updates
	// the existing record. The stored version is returned with assigned id,
	// incremented version, and maintained timestamps. Constraint violations
	// surface as errors, never as silently dropped writes.
	Persist(ctx context.Context, record *model.BookingRecord) (*model.BookingRecord, error)

	FindByID(ctx context.Context, id string) (*model.BookingRecord, error)

	// ListFor pages through all records for a resource regardless of
	// status, newest interval first. Serves the read-only listing surface,
	// not conflict checks.
	ListFor(ctx context.Context, ref model.ResourceRef, limit, offset int) ([]model.BookingRecord, int64, error)
}
