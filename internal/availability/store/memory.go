package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	availerrors "hotelops/internal/availability/errors"
	"hotelops/pkg/model"
)

// MemoryStore keeps booking records in a map. It backs tests and
// single-instance development setups; the mongo store is the production
// implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.BookingRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]model.BookingRecord),
	}
}

func (s *MemoryStore) ActiveRecordsFor(ctx context.Context, ref model.ResourceRef) ([]model.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.BookingRecord
	for _, rec := range s.records {
		if rec.Resource == ref && rec.Status.Active() {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Interval.Start.Before(out[j].Interval.Start)
	})
	return out, nil
}

func (s *MemoryStore) Persist(ctx context.Context, record *model.BookingRecord) (*model.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Millisecond)
	stored := *record

	if stored.ID == "" {
		stored.ID = uuid.NewString()
		stored.Version = 1
		stored.CreatedAt = now
	} else {
		existing, ok := s.records[stored.ID]
		if !ok {
			return nil, availerrors.ErrNotFound
		}
		stored.CreatedAt = existing.CreatedAt
		stored.Version = existing.Version + 1
	}
	stored.UpdatedAt = now

	s.records[stored.ID] = stored
	result := stored
	return &result, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*model.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, availerrors.ErrNotFound
	}
	result := rec
	return &result, nil
}

func (s *MemoryStore) ListFor(ctx context.Context, ref model.ResourceRef, limit, offset int) ([]model.BookingRecord, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []model.BookingRecord
	for _, rec := range s.records {
		if rec.Resource == ref {
			all = append(all, rec)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Interval.Start.After(all[j].Interval.Start)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []model.BookingRecord{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}
