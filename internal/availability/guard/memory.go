package guard

import (
	"context"
	"sync"
	"time"

	apperrors "hotelops/pkg/errors"
	"hotelops/pkg/model"
)

// entry is one resource's lock. sem has capacity 1: holding the token is
// holding the lock. refs counts waiters plus the holder so the table entry
// can be reclaimed once the last interested caller leaves.
type entry struct {
	sem  chan struct{}
	refs int
}

// Memory is the in-process guard: a lazily populated lock table keyed by
// resource. Entries are removed as soon as no operation is in flight for
// the resource, so the table never grows beyond the current working set.
// acquireTimeout bounds the wait for the lock; zero means wait until the
// caller's ctx expires.
type Memory struct {
	mu             sync.Mutex
	locks          map[string]*entry
	acquireTimeout time.Duration
}

func NewMemory(acquireTimeout time.Duration) *Memory {
	return &Memory{
		locks:          make(map[string]*entry),
		acquireTimeout: acquireTimeout,
	}
}

func (m *Memory) WithExclusiveAccess(ctx context.Context, ref model.ResourceRef, fn func(ctx context.Context) error) error {
	key := ref.Key()

	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	acquireCtx := ctx
	if m.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, m.acquireTimeout)
		defer cancel()
	}

	select {
	case e.sem <- struct{}{}:
	case <-acquireCtx.Done():
		m.release(key, e)
		return apperrors.GuardTimeout("timed out waiting for resource guard: " + key)
	}

	defer func() {
		<-e.sem
		m.release(key, e)
	}()

	return fn(ctx)
}

func (m *Memory) release(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
}

// InFlight reports how many resources currently have an entry in the lock
// table. Used by tests to verify entries do not leak.
func (m *Memory) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
