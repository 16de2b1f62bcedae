package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Storage keys carried over from the original web client so a migrated
// deployment keeps recognizing existing sessions.
const (
	keyLastActiveAt   = "brc_last_active_at_v1"
	keySessionCreated = "brc_session_created_at_v1"
	keySessionExpires = "brc_session_expires_at_v1"
)

// RedisSessionStateRepository implements SessionStateRepository on Redis.
type RedisSessionStateRepository struct {
	client *redis.Client
}

func NewRedisSessionStateRepository(client *redis.Client) repository.SessionStateRepository {
	return &RedisSessionStateRepository{client: client}
}

// Touch stores the activity timestamp unless a newer one is already
// recorded. The read-then-set pair is not atomic across clients; a lost
// race only ever keeps the later of two nearly identical values.
func (r *RedisSessionStateRepository) Touch(ctx context.Context, at time.Time) error {
	nowMs := at.UnixMilli()

	cur, err := parseMsValue(r.client.Get(ctx, keyLastActiveAt))
	if err != nil {
		return fmt.Errorf("redis GET %s failed: %w", keyLastActiveAt, err)
	}
	if nowMs < cur {
		return nil
	}

	if err := r.client.Set(ctx, keyLastActiveAt, strconv.FormatInt(nowMs, 10), 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s failed: %w", keyLastActiveAt, err)
	}
	return nil
}

// CreateWindow writes createdAt/expiresAt together, only when no window
// exists. Two clients racing here may both observe "no window" and both
// write; the windows differ by at most one tick of activity and either is
// a valid, conservative choice.
func (r *RedisSessionStateRepository) CreateWindow(ctx context.Context, createdAt, expiresAt time.Time) error {
	created, err := parseMsValue(r.client.Get(ctx, keySessionCreated))
	if err != nil {
		return fmt.Errorf("redis GET %s failed: %w", keySessionCreated, err)
	}
	expires, err := parseMsValue(r.client.Get(ctx, keySessionExpires))
	if err != nil {
		return fmt.Errorf("redis GET %s failed: %w", keySessionExpires, err)
	}
	if created != 0 && expires != 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, keySessionCreated, strconv.FormatInt(createdAt.UnixMilli(), 10), 0)
	pipe.Set(ctx, keySessionExpires, strconv.FormatInt(expiresAt.UnixMilli(), 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute window create pipeline: %w", err)
	}
	return nil
}

// Read returns the stored record, mapping missing or malformed values to
// zero so a corrupted store degrades to "no session" rather than an error.
func (r *RedisSessionStateRepository) Read(ctx context.Context) (*models.SessionRecord, error) {
	vals, err := r.client.MGet(ctx, keyLastActiveAt, keySessionCreated, keySessionExpires).Result()
	if err != nil {
		return nil, fmt.Errorf("redis MGET failed: %w", err)
	}

	rec := &models.SessionRecord{
		LastActiveAt: msFromMGet(vals[0]),
		CreatedAt:    msFromMGet(vals[1]),
		ExpiresAt:    msFromMGet(vals[2]),
	}
	return rec, nil
}

// Clear removes the three timestamps.
func (r *RedisSessionStateRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, keyLastActiveAt, keySessionCreated, keySessionExpires).Err(); err != nil {
		return fmt.Errorf("redis DEL session keys failed: %w", err)
	}
	return nil
}

// parseMsValue turns a GET result into a ms timestamp. Absent keys and
// garbage both map to zero.
func parseMsValue(cmd *redis.StringCmd) (int64, error) {
	raw, err := cmd.Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return ms, nil
}

// msFromMGet handles the interface{} values MGET yields.
func msFromMGet(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}
