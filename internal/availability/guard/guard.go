// Package guard provides per-resource mutual exclusion for the
// check-and-reserve critical section. Exactly one caller at a time may run
// the guarded function for a given resource; operations on different
// resources proceed in parallel.
//
// Two implementations cover the two deployment shapes: Memory serializes
// within a single process, Mongo serializes across instances with advisory
// lock documents. Which one is used is a configuration decision invisible
// to engine callers.
package guard

import (
	"context"

	"hotelops/pkg/model"
)

// Guard runs fn while holding the exclusive lock for ref. The lock is
// released on every exit path. Acquisition honors ctx's deadline; on
// expiry the operation fails with a GUARD_TIMEOUT AppError and fn is never
// invoked.
type Guard interface {
	WithExclusiveAccess(ctx context.Context, ref model.ResourceRef, fn func(ctx context.Context) error) error
}
