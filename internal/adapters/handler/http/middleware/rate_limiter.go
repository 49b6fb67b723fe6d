package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func tooManyRequests(c *gin.Context, retryIn time.Duration) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"status":     "error",
		"message":    "Too many requests. Slow down!",
		"retry_in_s": int(retryIn.Seconds()),
	})
}

// RateLimiterMiddleware counts requests per client IP in fixed redis windows.
// When redis misbehaves the request is let through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration, logger *log.Logger) gin.HandlerFunc {
	logger = logger.WithPrefix("ratelimit")

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("redis unavailable, rate limiter skipped", "err", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("redis expire failed, dropping key", "key", key, "err", err)
				rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(limit) {
			tooManyRequests(c, ttl)
			return
		}

		c.Next()
	}
}

// keyedLimiter holds one token bucket per client. A bucket left alone for a
// whole window has refilled completely, so it is dropped and recreated on the
// client's next request.
type keyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*trackedLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type trackedLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(limit int, window time.Duration) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*trackedLimiter),
		limit:    rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
		idle:     window,
		now:      time.Now,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) >= k.idle {
		k.sweep(now)
	}

	l, ok := k.limiters[key]
	if !ok {
		l = &trackedLimiter{Limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = l
	}
	l.lastSeen = now
	return l.Limiter
}

func (k *keyedLimiter) sweep(now time.Time) {
	for key, l := range k.limiters {
		if now.Sub(l.lastSeen) >= k.idle {
			delete(k.limiters, key)
		}
	}
	k.lastSweep = now
}

func (k *keyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// LocalRateLimiterMiddleware is the in-process limiter used when no redis is
// configured. A client may burst up to limit requests, refilled over window.
func LocalRateLimiterMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	limiters := newKeyedLimiter(limit, window)

	return func(c *gin.Context) {
		l := limiters.get(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		if !l.Allow() {
			tooManyRequests(c, window/time.Duration(max(limit, 1)))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, int(l.Tokens()))))

		c.Next()
	}
}
