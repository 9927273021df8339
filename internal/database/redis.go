package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// InitRedis connects when REDIS_ADDR is set. Caching and the shared hint
// budget are disabled without it.
func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, caching disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Caching disabled.", err)
		client.Close()
		return
	}
	Redis = client
	log.Println("Connected to Redis successfully")
}

// Cache wraps a redis client. A nil client turns every call into a miss.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Incr bumps key and starts its window on first use
func (c *Cache) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if !c.Enabled() {
		return 0, fmt.Errorf("redis not configured")
	}
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		c.client.Expire(ctx, key, window)
	}
	return count, nil
}

// Count reads a counter without changing it
func (c *Cache) Count(ctx context.Context, key string) (int64, error) {
	if !c.Enabled() {
		return 0, fmt.Errorf("redis not configured")
	}
	n, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.Enabled() {
		return redis.Nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Invalidate(ctx context.Context, pattern string) error {
	if !c.Enabled() {
		return nil
	}
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Ping reports "ok", "error" or "not configured" for health checks
func (c *Cache) Ping(ctx context.Context) string {
	if !c.Enabled() {
		return "not configured"
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return "error"
	}
	return "ok"
}
