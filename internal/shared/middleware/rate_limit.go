package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/shared/response"
)

// Counter is the subset of pkg/cache.Cache the limiter needs.
type Counter interface {
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimit is a fixed-window limiter keyed on client IP.
// Khi Redis lỗi thì cho request đi qua (fail open).
func RateLimit(counter Counter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.GetString("client_ip")
		if ip == "" {
			ip = c.ClientIP()
		}
		key := fmt.Sprintf("ratelimit:%s", ip)
		ctx := c.Request.Context()

		count, err := counter.Increment(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("rate limit counter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			if err := counter.Expire(ctx, key, window); err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limit expire failed")
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retry := window
			ttl, err := counter.TTL(ctx, key)
			switch {
			case err != nil:
			case ttl > 0:
				retry = ttl
			default:
				// Key không có TTL (Expire lỗi ở request đầu) sẽ chặn IP mãi mãi
				if err := counter.Expire(ctx, key, window); err != nil {
					log.Warn().Err(err).Str("ip", ip).Msg("rate limit expire failed")
				}
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			response.TooManyRequests(c, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
