package db

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "cache:"

// NewRedis creates a new Redis client
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("[Redis] client created (addr: %s)\n", addr)
	return rdb
}

// Cache stores JSON values under the "cache:" namespace.
type Cache struct {
	Client *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{Client: rdb}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, cachePrefix+key, data, expiration).Err()
}

// Get decodes the cached value into dest. A miss returns redis.Nil.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Client.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.Client.Del(ctx, cachePrefix+key).Err()
}
