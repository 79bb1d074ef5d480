package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const TaskCacheTTL = 5 * time.Minute

// TaskCache caches each owner's task list. All methods are safe on a nil
// receiver client, so callers never have to branch on whether Redis is
// configured.
type TaskCache struct {
	client *redis.Client
}

func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

func (c *TaskCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached bytes for key, or nil on a miss.
func (c *TaskCache) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (c *TaskCache) Set(ctx context.Context, key string, data interface{}) error {
	if !c.Enabled() {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, TaskCacheTTL).Err()
}

// Invalidate drops the cached list after a mutation.
func (c *TaskCache) Invalidate(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, key).Err()
}

// OwnerTasksKey builds the cache key for one owner's task list.
func OwnerTasksKey(owner string) string {
	return fmt.Sprintf("tasks:owner:%s", owner)
}
