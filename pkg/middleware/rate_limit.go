package middleware

import (
	"net/http"
	"sync"
	"time"

	"hotelops/pkg/logger"
)

type OwnerExtractor func(r *http.Request) string

// OwnerRateLimiter applies a sliding-window limit per owner id so one guest
// or integration cannot hammer the reserve endpoint for everyone else.
type OwnerRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor OwnerExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewOwnerRateLimiter(limit int, window time.Duration, extractor OwnerExtractor, log *logger.Logger) *OwnerRateLimiter {
	limiter := &OwnerRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *OwnerRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for owner, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, owner)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *OwnerRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *OwnerRateLimiter) Allow(owner string) bool {
	if owner == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[owner][:0]
	for _, ts := range rl.requests[owner] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[owner] = valid
		return false
	}

	rl.requests[owner] = append(valid, now)
	return true
}

func OwnerRateLimit(limiter *OwnerRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := ""
			if limiter.extractor != nil {
				owner = limiter.extractor(r)
			} else {
				owner = DefaultOwnerExtractor(r)
			}

			if owner == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(owner) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", RequestIDFrom(r.Context()),
					"owner_id", owner,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func DefaultOwnerExtractor(r *http.Request) string {
	return r.Header.Get("X-Owner-ID")
}
