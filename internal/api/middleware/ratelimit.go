package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/shelfmark/shelfmark/pkg/logger"
	"github.com/shelfmark/shelfmark/pkg/response"
)

// Limiter gates the unauthenticated live-typing endpoints per client.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed one-second window on INCR+EXPIRE, shared across
// instances.
type RedisLimiter struct {
	rdb *redis.Client
	rps int
}

func NewRedisLimiter(rdb *redis.Client, rps int) *RedisLimiter {
	if rps <= 0 {
		rps = 10
	}
	return &RedisLimiter{rdb: rdb, rps: rps}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := "ratelimit:" + key + ":" + time.Now().UTC().Format("20060102150405")
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		l.rdb.Expire(ctx, k, 2*time.Second)
	}
	return n <= int64(l.rps), nil
}

// LocalLimiter is the in-process token-bucket fallback for deployments
// without redis.
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

func NewLocalLimiter(rps, burst int) *LocalLimiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 2 * rps
	}
	return &LocalLimiter{buckets: make(map[string]*rate.Limiter), rps: rate.Limit(rps), burst: burst}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.rps, l.burst)
		l.buckets[key] = b
	}
	l.mu.Unlock()
	return b.Allow(), nil
}

// RateLimit rejects over-limit clients with 429, keyed by client IP. A
// limiter backend error fails open: availability typing must not depend on
// redis being up.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, failing open")
			c.Next()
			return
		}
		if !ok {
			c.JSON(http.StatusTooManyRequests, response.Response{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
