package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"todolist/models"
)

const (
	listCacheKey = "todos:list"
	listCacheTTL = 30 * time.Second
	redisTimeout = 5 * time.Second
)

// OpenRedisPool initializes a Redis connection pool.
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	opt.PoolSize = 50
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}

	return client
}

// ListCache keeps the serialized task list in Redis for a short while so
// repeated GETs skip the database. A nil Client disables it entirely; cache
// errors are logged and treated as misses, never surfaced to the caller.
type ListCache struct {
	Client *redis.Client
}

func (c *ListCache) Get(ctx context.Context) ([]models.Task, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := c.Client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("Error reading list cache:", err)
		}
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.Println("Error decoding list cache:", err)
		return nil, false
	}
	return tasks, true
}

func (c *ListCache) Set(ctx context.Context, tasks []models.Task) {
	if c == nil || c.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := json.Marshal(tasks)
	if err != nil {
		log.Println("Error encoding list cache:", err)
		return
	}
	if err := c.Client.Set(ctx, listCacheKey, data, listCacheTTL).Err(); err != nil {
		log.Println("Error writing list cache:", err)
	}
}

// Invalidate drops the cached list after any successful mutation.
func (c *ListCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := c.Client.Del(ctx, listCacheKey).Err(); err != nil {
		log.Println("Error invalidating list cache:", err)
	}
}
