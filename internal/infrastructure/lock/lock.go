package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PlayerLockManager serializes profile read-modify-write cycles per player
// within this process. Two devices hitting two processes can still race; that
// gap is accepted by the data model.
type PlayerLockManager struct {
	locks  sync.Map // map[string]*sync.Mutex
	logger *zap.Logger
}

// NewPlayerLockManager creates a new lock manager
func NewPlayerLockManager() *PlayerLockManager {
	logger, _ := zap.NewProduction()
	return &PlayerLockManager{
		logger: logger,
	}
}

// Lock acquires a lock for the given userID with timeout
func (m *PlayerLockManager) Lock(ctx context.Context, userID string) error {
	m.logger.Debug("Attempting to acquire lock", zap.String("userID", userID))
	mu := m.getOrCreateMutex(userID)

	// acquire lock with context timeout
	lockChan := make(chan struct{})
	go func() {
		mu.Lock()
		close(lockChan)
	}()

	select {
	case <-lockChan:
		m.logger.Debug("Successfully acquired lock", zap.String("userID", userID))
		return nil
	case <-ctx.Done():
		m.logger.Error("Failed to acquire lock: context cancelled", zap.String("userID", userID), zap.Error(ctx.Err()))
		return fmt.Errorf("failed to acquire lock for user %s: %w", userID, ctx.Err())
	case <-time.After(5 * time.Second):
		m.logger.Error("Failed to acquire lock: timeout", zap.String("userID", userID), zap.Duration("timeout", 5*time.Second))
		return fmt.Errorf("failed to acquire lock for user %s: timeout", userID)
	}
}

// Unlock releases the lock for the given userID
func (m *PlayerLockManager) Unlock(userID string) {
	muInterface, ok := m.locks.Load(userID)
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.String("userID", userID))
		return
	}
	mu := muInterface.(*sync.Mutex)
	mu.Unlock()
}

// TryLock attempts to acquire a lock without blocking
func (m *PlayerLockManager) TryLock(userID string) bool {
	mu := m.getOrCreateMutex(userID)
	return mu.TryLock()
}

func (m *PlayerLockManager) getOrCreateMutex(userID string) *sync.Mutex {
	mu, ok := m.locks.Load(userID)
	if ok {
		return mu.(*sync.Mutex)
	}

	newMu := &sync.Mutex{}
	actual, _ := m.locks.LoadOrStore(userID, newMu)
	return actual.(*sync.Mutex)
}
