package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/pkg/logger"
	"go-hiring-pipeline/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to reject when Redis is unavailable
	FailClosed bool
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

var (
	rateLimitStore = sync.Map{}
	cleanupOnce    sync.Once
)

// Atomic increment with TTL set on first hit.
// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns [count, ttl].
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// GlobalRateLimitConfig limits all API traffic per client IP
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// UploadRateLimitConfig limits document uploads per client IP
func UploadRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:upload:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given
// config. Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		key := config.KeyFunc(c)
		fullKey := config.KeyPrefix + key
		now := time.Now()

		var count int
		var resetAt time.Time
		var err error

		redisClient := redis.Client()
		if redisClient != nil {
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				if config.FailClosed {
					logger.Log.Error("rate limit backend unavailable", "error", err.Error())
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = checkRateLimitInMemory(fullKey, config, now)
			}
		} else {
			count, resetAt = checkRateLimitInMemory(fullKey, config, now)
		}

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("rate limit exceeded",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	return int(count), resetAt, nil
}

func checkRateLimitInMemory(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	entryI, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{
		count:   0,
		resetAt: now.Add(config.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}

	entry.count++

	return entry.count, entry.resetAt
}
