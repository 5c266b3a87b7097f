package storage

import "sync"

// OperationType defines whether an operation is read or write, so the
// LockManager can pick the matching lock: shared for reads, exclusive for
// writes.
type OperationType int

const (
	// ReadOperation indicates an operation that only reads the resident
	// snapshot. Multiple read operations can proceed concurrently.
	ReadOperation OperationType = iota

	// WriteOperation indicates an operation that mutates the snapshot or the
	// persisted blob. Write operations are exclusive.
	WriteOperation
)

// LockManager centralizes the locking strategy for the tree store. The
// design is logically single-actor (one user-initiated action at a time),
// but the Go API stays safe when a host calls in from several goroutines,
// and funnelling every lock acquisition through one place avoids
// lock/unlock/relock mistakes in the store's load→mutate→save→reload chains.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager returns a ready-to-use lock manager.
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn under the lock matching the operation type. The lock is
// released via defer, so fn panicking cannot leak a held lock. Results are
// conveyed by closure capture.
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
