package memory

import (
	"context"
	"sync"

	"github.com/bigredconnect/sessiond/internal/repository"
)

// MemoryTransientRepository implements the scratch namespace in memory.
type MemoryTransientRepository struct {
	mutex  sync.Mutex
	values map[string]string
}

func NewMemoryTransientRepository() repository.TransientRepository {
	return &MemoryTransientRepository{values: make(map[string]string)}
}

func (r *MemoryTransientRepository) Put(ctx context.Context, key, value string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.values[key] = value
	return nil
}

func (r *MemoryTransientRepository) Clear(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.values = make(map[string]string)
	return nil
}

// Len reports how many scratch values are held. Test helper.
func (r *MemoryTransientRepository) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.values)
}
