// Package interval implements half-open interval algebra for reservation
// conflict checks. Every resource kind uses the same convention: a range
// [start, end) includes its start and excludes its end, so a booking ending
// at 11:00 never conflicts with one starting at 11:00.
package interval

import (
	"time"

	"hotelops/pkg/model"
)

// IsValid reports whether i is a well-formed candidate: strictly positive
// length. Zero-length and inverted intervals are rejected.
func IsValid(i model.Interval) bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether a and b share at least one instant under
// half-open semantics.
func Overlaps(a, b model.Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether t falls inside i.
func Contains(i model.Interval, t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of i.
func Duration(i model.Interval) time.Duration {
	return i.End.Sub(i.Start)
}
