package redis

import (
	"context"
	"fmt"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const keyRiderProfile = "bigred_rider_profile_v1"

// Convenience keys the original client wrote next to the profile. The
// guard never reads them but must wipe them on logout.
var legacyProfileKeys = []string{
	"riderId",
	"riderName",
	"lastRideId",
	"brc_last_ride_id_v1",
}

// RedisProfileRepository implements ProfileRepository on Redis.
type RedisProfileRepository struct {
	client *redis.Client
}

func NewRedisProfileRepository(client *redis.Client) repository.ProfileRepository {
	return &RedisProfileRepository{client: client}
}

// Get returns the stored profile. A missing key, broken JSON, or an empty
// rider id all report ErrNoProfile: the guard treats them identically.
func (r *RedisProfileRepository) Get(ctx context.Context) (*models.RiderProfile, error) {
	raw, err := r.client.Get(ctx, keyRiderProfile).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s failed: %w", keyRiderProfile, err)
	}

	var profile models.RiderProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, repository.ErrNoProfile
	}
	if profile.RiderID == "" {
		return nil, repository.ErrNoProfile
	}
	return &profile, nil
}

// Clear removes the profile and every legacy convenience key in one DEL.
func (r *RedisProfileRepository) Clear(ctx context.Context) error {
	keys := append([]string{keyRiderProfile}, legacyProfileKeys...)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis DEL profile keys failed: %w", err)
	}
	return nil
}
