package redis

import (
	"context"
	"fmt"

	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/redis/go-redis/v9"
)

const scratchPrefix = "brc_scratch:"

// RedisTransientRepository implements the tab-scoped scratch namespace as
// a prefixed key range.
type RedisTransientRepository struct {
	client *redis.Client
}

func NewRedisTransientRepository(client *redis.Client) repository.TransientRepository {
	return &RedisTransientRepository{client: client}
}

func (r *RedisTransientRepository) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, scratchPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET scratch key failed: %w", err)
	}
	return nil
}

// Clear walks the scratch namespace with SCAN and deletes everything it
// finds. The namespace is tiny, so a single pass per batch is fine.
func (r *RedisTransientRepository) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, scratchPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis SCAN scratch namespace failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis DEL scratch keys failed: %w", err)
	}
	return nil
}
