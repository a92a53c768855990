package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockDistributedLock tracks named locks in memory with TTL expiry.
// Expired locks are treated as free, matching the Redis and advisory
// lock adapters closely enough for service tests.
type MockDistributedLock struct {
	mu     sync.Mutex
	expiry map[string]time.Time
}

// NewMockDistributedLock creates a new mock distributed lock.
func NewMockDistributedLock() *MockDistributedLock {
	return &MockDistributedLock{
		expiry: make(map[string]time.Time),
	}
}

// Acquire takes the named lock unless it is held and unexpired.
func (m *MockDistributedLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if until, held := m.expiry[name]; held && time.Now().Before(until) {
		return false, nil
	}

	m.expiry[name] = time.Now().Add(ttl)
	return true, nil
}

// Release frees the named lock. Releasing an unheld lock is a no-op.
func (m *MockDistributedLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.expiry, name)
	return nil
}

// Extend pushes out the expiry of a held lock.
func (m *MockDistributedLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, held := m.expiry[name]
	if !held || time.Now().After(until) {
		return fmt.Errorf("lock %s not held", name)
	}

	m.expiry[name] = time.Now().Add(ttl)
	return nil
}

// Ping always reports healthy.
func (m *MockDistributedLock) Ping(ctx context.Context) error {
	return nil
}

// Reset clears all locks (useful between tests).
func (m *MockDistributedLock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expiry = make(map[string]time.Time)
}

// IsHeld reports whether a lock is currently held (for test assertions).
func (m *MockDistributedLock) IsHeld(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, held := m.expiry[name]
	return held && time.Now().Before(until)
}

// SetLockHeld forces a lock to be held, simulating another instance (for test setup).
func (m *MockDistributedLock) SetLockHeld(name string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expiry[name] = time.Now().Add(ttl)
}
