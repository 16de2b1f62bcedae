package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
)

// MemorySessionStateRepository implements SessionStateRepository in memory.
// Used for tests and for running the guard without a Redis backend; state
// does not survive a process restart.
type MemorySessionStateRepository struct {
	mutex  sync.RWMutex
	record models.SessionRecord
}

func NewMemorySessionStateRepository() repository.SessionStateRepository {
	return &MemorySessionStateRepository{}
}

func (r *MemorySessionStateRepository) Touch(ctx context.Context, at time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	nowMs := at.UnixMilli()
	if nowMs >= r.record.LastActiveAt {
		r.record.LastActiveAt = nowMs
	}
	return nil
}

func (r *MemorySessionStateRepository) CreateWindow(ctx context.Context, createdAt, expiresAt time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.record.HasWindow() {
		return nil
	}
	r.record.CreatedAt = createdAt.UnixMilli()
	r.record.ExpiresAt = expiresAt.UnixMilli()
	return nil
}

func (r *MemorySessionStateRepository) Read(ctx context.Context) (*models.SessionRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec := r.record
	return &rec, nil
}

func (r *MemorySessionStateRepository) Clear(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.record = models.SessionRecord{}
	return nil
}
