package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLPost     = 10 * time.Minute // post detail (rarely edited after publish)
	TTLSearch   = 30 * time.Second // search result pages (fresh listings matter)
	TTLRecent   = 1 * time.Minute  // recent posts on the front page
	TTLSitemap  = 1 * time.Hour    // sitemap/feed XML
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixPost    = "post:"
	PrefixSearch  = "search:"
	PrefixRecent  = "recent:"
	PrefixSitemap = "sitemap:"
)

// Service Redis cache service interface
type Service interface {
	// Basic operations
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Post detail cache (keyed by slug)
	GetPost(ctx context.Context, slug string) ([]byte, error)
	SetPost(ctx context.Context, slug string, data interface{}) error
	InvalidatePost(ctx context.Context, slug string) error

	// Search result page cache (keyed by query+page)
	GetSearchPage(ctx context.Context, query string, page int) ([]byte, error)
	SetSearchPage(ctx context.Context, query string, page int, data interface{}) error
	InvalidateSearchPages(ctx context.Context) error

	// Recent posts cache
	GetRecent(ctx context.Context) ([]byte, error)
	SetRecent(ctx context.Context, data interface{}) error
	InvalidateRecent(ctx context.Context) error

	// Sitemap/feed XML cache
	GetSitemap(ctx context.Context, name string) ([]byte, error)
	SetSitemap(ctx context.Context, name string, data []byte) error
	InvalidateSitemaps(ctx context.Context) error

	// Utility
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed implementation
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service. A nil client yields a fail-open
// cache: reads miss, writes are ignored.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis connection was configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set writes a value to the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, ignore
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is cached
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) postKey(slug string) string {
	return PrefixPost + slug
}

func (c *redisCache) GetPost(ctx context.Context, slug string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.postKey(slug)).Bytes()
}

func (c *redisCache) SetPost(ctx context.Context, slug string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.postKey(slug), jsonData, TTLPost).Err()
}

func (c *redisCache) InvalidatePost(ctx context.Context, slug string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.postKey(slug)).Err()
}

func (c *redisCache) searchKey(query string, page int) string {
	return fmt.Sprintf("%sq=%s:p=%d", PrefixSearch, query, page)
}

func (c *redisCache) GetSearchPage(ctx context.Context, query string, page int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.searchKey(query, page)).Bytes()
}

func (c *redisCache) SetSearchPage(ctx context.Context, query string, page int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.searchKey(query, page), jsonData, TTLSearch).Err()
}

func (c *redisCache) InvalidateSearchPages(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixSearch+"*")
}

func (c *redisCache) recentKey() string {
	return PrefixRecent + "posts"
}

func (c *redisCache) GetRecent(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.recentKey()).Bytes()
}

func (c *redisCache) SetRecent(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.recentKey(), jsonData, TTLRecent).Err()
}

func (c *redisCache) InvalidateRecent(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.recentKey()).Err()
}

func (c *redisCache) sitemapKey(name string) string {
	return PrefixSitemap + name
}

func (c *redisCache) GetSitemap(ctx context.Context, name string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.sitemapKey(name)).Bytes()
}

func (c *redisCache) SetSitemap(ctx context.Context, name string, data []byte) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.sitemapKey(name), data, TTLSitemap).Err()
}

func (c *redisCache) InvalidateSitemaps(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixSitemap+"*")
}

// deleteByPattern removes all keys matching a glob pattern using SCAN
func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
