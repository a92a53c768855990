package postgres

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DistributedLock = (*AdvisoryLock)(nil)

// AdvisoryLock implements DistributedLock with PostgreSQL advisory locks,
// used when no Redis is configured. Advisory locks have no TTL: they are
// session-scoped and vanish when the connection closes, so the ttl
// arguments are accepted and ignored. Redis locks are preferred for
// multi-instance deployments.
type AdvisoryLock struct {
	db *DB
}

// NewAdvisoryLock creates a new PostgreSQL advisory lock adapter.
func NewAdvisoryLock(db *DB) *AdvisoryLock {
	return &AdvisoryLock{db: db}
}

// hashLockName maps a lock name to the 64-bit key space advisory locks
// use. FNV-1a keeps the mapping stable across instances.
func hashLockName(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte("lexiqa:lock:" + name))
	return int64(h.Sum64())
}

// Acquire tries to take the named advisory lock without blocking.
// The ttl is ignored; the lock is held until released or the connection closes.
func (l *AdvisoryLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	lockID := hashLockName(name)

	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", lockID).Scan(&acquired)
	if err != nil {
		return false, err
	}
	return acquired, nil
}

// Release frees the named advisory lock. Releasing an unheld lock
// reports false from PostgreSQL, which is not treated as an error.
func (l *AdvisoryLock) Release(ctx context.Context, name string) error {
	lockID := hashLockName(name)

	var released bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", lockID).Scan(&released)
	if err != nil {
		return err
	}
	return nil
}

// Extend is a no-op since advisory locks never expire on their own.
func (l *AdvisoryLock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	return nil
}

// Ping checks if the PostgreSQL backend is healthy.
func (l *AdvisoryLock) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}
