package cache

import (
	"context"
	"time"
)

// Cache là contract của cache layer dùng chung cho repository (cache-aside),
// geocoder và rate limiter. Redis là implementation duy nhất; tests dùng fake.
type Cache interface {
	// Get unmarshals the cached JSON into dest.
	// found = false nghĩa là cache miss, dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshals value to JSON and stores it with TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa theo glob, ví dụ "contributor:*"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error

	// Fixed-window counters cho rate limit
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
