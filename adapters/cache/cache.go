// Package cache provides a short-lived quote cache for the API layer,
// keyed by a digest of the calculation request. The solver is pure, so
// a cached result for identical inputs is always valid until the rate
// tables change; the TTL bounds staleness across rate reloads.
//
// Redis backs the cache when configured; otherwise an in-process map
// with the same interface is used.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"lender-quote/core/types"
)

// DefaultTTL bounds how long a cached quote may be served
const DefaultTTL = 5 * time.Minute

// Cache stores computed quote results by request digest
type Cache interface {
	Get(ctx context.Context, key string) (*types.QuoteResult, bool)
	Set(ctx context.Context, key string, res *types.QuoteResult)
}

// Key derives the cache key for a calculation request. Field order is
// normalized so logically identical requests share a digest.
func Key(variant types.Variant, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(variant))
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(fields[k]))
	}
	return "quote:" + hex.EncodeToString(h.Sum(nil))
}

// Redis is a Cache backed by a Redis instance
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache
func NewRedis(addr, password string, db int) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: DefaultTTL,
	}
}

// Ping verifies connectivity to the Redis instance
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get retrieves a cached result. Cache errors degrade to a miss.
func (r *Redis) Get(ctx context.Context, key string) (*types.QuoteResult, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var res types.QuoteResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set stores a result. Cache errors are dropped.
func (r *Redis) Set(ctx context.Context, key string, res *types.QuoteResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	r.client.Set(ctx, key, data, r.ttl)
}

// Close releases the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}

// memoryEntry is one cached result with its expiry
type memoryEntry struct {
	res     *types.QuoteResult
	expires time.Time
}

// Memory is an in-process Cache used when Redis is not configured
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an in-process cache
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
	}
}

// Get retrieves a cached result if it has not expired
func (m *Memory) Get(_ context.Context, key string) (*types.QuoteResult, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.res, true
}

// Set stores a result, evicting any expired entries it passes
func (m *Memory) Set(_ context.Context, key string, res *types.QuoteResult) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoryEntry{res: res, expires: now.Add(m.ttl)}
}
