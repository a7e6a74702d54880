package cache

import (
	"context"
	"sync"
	"time"

	applending "github.com/lendledger/backend/internal/application/lending"
	"github.com/lendledger/backend/internal/domain/lending"
)

// entry represents a cached schedule with expiration
type entry struct {
	rows      []lending.ScheduleRow
	expiresAt time.Time
}

// InMemoryScheduleCache implements ScheduleCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryScheduleCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// DefaultScheduleTTL bounds staleness when invalidation is missed.
// Schedules only change when loan terms change, which also rewrites
// the cache key, so a generous TTL is safe.
const DefaultScheduleTTL = time.Hour

// NewInMemoryScheduleCache creates a new in-memory schedule cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryScheduleCache(ttl time.Duration) *InMemoryScheduleCache {
	if ttl <= 0 {
		ttl = DefaultScheduleTTL
	}
	store := &InMemoryScheduleCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the cached schedule, or (nil, nil) on a miss
func (s *InMemoryScheduleCache) Get(_ context.Context, key string) ([]lending.ScheduleRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		return nil, nil
	}

	rows := make([]lending.ScheduleRow, len(e.rows))
	copy(rows, e.rows)
	return rows, nil
}

// Set stores the schedule under the key
func (s *InMemoryScheduleCache) Set(_ context.Context, key string, rows []lending.ScheduleRow) error {
	stored := make([]lending.ScheduleRow, len(rows))
	copy(stored, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{
		rows:      stored,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the schedule for the key
func (s *InMemoryScheduleCache) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (s *InMemoryScheduleCache) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryScheduleCache) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *InMemoryScheduleCache) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryScheduleCache) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemoryScheduleCache implements ScheduleCache
var _ applending.ScheduleCache = (*InMemoryScheduleCache)(nil)
