package memory

import (
	"context"
	"sync"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
)

// MemoryProfileRepository implements ProfileRepository in memory.
type MemoryProfileRepository struct {
	mutex   sync.RWMutex
	profile *models.RiderProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{}
}

// Put seeds a profile. The guard itself never calls this; it exists for
// tests and for hosts that bootstrap a login out of band.
func (r *MemoryProfileRepository) Put(ctx context.Context, profile *models.RiderProfile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.profile = profile
	return nil
}

func (r *MemoryProfileRepository) Get(ctx context.Context) (*models.RiderProfile, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.profile == nil || r.profile.RiderID == "" {
		return nil, repository.ErrNoProfile
	}
	p := *r.profile
	return &p, nil
}

func (r *MemoryProfileRepository) Clear(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.profile = nil
	return nil
}
