package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/utils/cache"
	"github.com/sahilchouksey/student-management-api/utils/response"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 5 * time.Minute
)

// LoginRateLimiter caps login attempts per IP using redis counters
type LoginRateLimiter struct {
	redisCache *cache.RedisCache
}

// NewLoginRateLimiter creates a login rate limiter. redisCache may be nil, in
// which case the limiter is a no-op rather than a lockout for everyone.
func NewLoginRateLimiter(redisCache *cache.RedisCache) *LoginRateLimiter {
	return &LoginRateLimiter{redisCache: redisCache}
}

// Limit allows at most 5 login attempts per IP per 5 minutes
func (l *LoginRateLimiter) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.redisCache == nil {
			return c.Next()
		}

		ctx := c.Context()
		key := fmt.Sprintf("login_attempt:%s", c.IP())

		attempts, err := l.redisCache.Increment(ctx, key)
		if err != nil {
			// Redis being down must not lock legitimate users out
			return c.Next()
		}

		if attempts == 1 {
			_ = l.redisCache.Expire(ctx, key, loginAttemptWindow)
		}

		if attempts > loginAttemptLimit {
			ttl, _ := l.redisCache.TTL(ctx, key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(loginAttemptWindow.Seconds())
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, "Too many login attempts. Try again after 5 minutes.")
		}

		return c.Next()
	}
}
