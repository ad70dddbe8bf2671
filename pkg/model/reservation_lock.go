package model

import "time"

// ReservationLock is an advisory lock document keyed by resource. It backs
// the store-level guard strategy: only one process instance can hold the
// lock for a resource at a time. ExpiresAt bounds how long a crashed holder
// can block the resource.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
