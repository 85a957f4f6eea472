package lock

import (
	"context"
	"sync"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// InMemoryScanLocker implements ScanLocker with a process-local map.
// Suitable for single-instance deployments and tests; distributed
// deployments need the Redis-backed locker.
type InMemoryScanLocker struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

// NewInMemoryScanLocker creates an in-process scan locker
func NewInMemoryScanLocker() *InMemoryScanLocker {
	return &InMemoryScanLocker{held: make(map[int64]struct{})}
}

// Acquire takes the per-drum lock, failing fast when already held
func (l *InMemoryScanLocker) Acquire(_ context.Context, drumID int64) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[drumID]; taken {
		return nil, &inventory.ScanInProgressError{DrumID: drumID}
	}
	l.held[drumID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, drumID)
			l.mu.Unlock()
		})
	}
	return release, nil
}

var _ inventory.ScanLocker = (*InMemoryScanLocker)(nil)
