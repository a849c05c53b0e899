package ratelimit

import (
	"context"
	"fmt"
	"time"

	"lagoona/internal/shared/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitType classifies routes by how aggressively they are limited
type RateLimitType string

const (
	TypeDefault RateLimitType = "default"
	TypePublic  RateLimitType = "public"
	TypeAuth    RateLimitType = "auth"
	TypeBooking RateLimitType = "booking"
	TypeAdmin   RateLimitType = "admin"
	TypeHealth  RateLimitType = "health"
)

// Sliding window over a sorted set: drop entries older than the
// window, count the rest, and only record the new request when it fits.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	return {0, count, tonumber(oldest[2])}
end

redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return {1, count + 1, 0}
`

// Result describes one rate limit decision
type Result struct {
	Allowed    bool
	Count      int64
	Limit      int
	RetryAfter time.Duration
}

// Limiter applies per-client sliding-window limits backed by Redis
type Limiter struct {
	redis *redis.Client
	cfg   config.RateLimitConfig
	sha   string
}

func NewLimiter(client *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{redis: client, cfg: cfg}
}

// Preload loads the script into the Redis script cache
func (l *Limiter) Preload(ctx context.Context) error {
	sha, err := l.redis.ScriptLoad(ctx, slidingWindowScript).Result()
	if err != nil {
		return fmt.Errorf("failed to preload rate limit script: %w", err)
	}
	l.sha = sha
	return nil
}

// Allow records one request for the client and reports whether it fits
// inside the window. When Redis is unreachable the request is allowed;
// rate limiting is protection, not a dependency.
func (l *Limiter) Allow(ctx context.Context, clientID string, limitType RateLimitType) (*Result, error) {
	limit := l.limitFor(limitType)
	windowMs := l.cfg.WindowDuration.Milliseconds()
	nowMs := time.Now().UnixMilli()
	key := fmt.Sprintf("ratelimit:%s:%s", limitType, clientID)
	member := fmt.Sprintf("%d-%s", nowMs, uuid.New().String()[:8])

	args := []interface{}{nowMs, windowMs, limit, member}

	var raw interface{}
	var err error
	if l.sha != "" {
		raw, err = l.redis.EvalSha(ctx, l.sha, []string{key}, args...).Result()
	}
	if l.sha == "" || err != nil {
		raw, err = l.redis.Eval(ctx, slidingWindowScript, []string{key}, args...).Result()
	}
	if err != nil {
		return &Result{Allowed: true, Limit: limit}, fmt.Errorf("rate limit script failed: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return &Result{Allowed: true, Limit: limit}, fmt.Errorf("unexpected rate limit result: %v", raw)
	}

	allowed, _ := values[0].(int64)
	count, _ := values[1].(int64)
	oldest, _ := values[2].(int64)

	result := &Result{
		Allowed: allowed == 1,
		Count:   count,
		Limit:   limit,
	}
	if !result.Allowed && oldest > 0 {
		retryAt := time.UnixMilli(oldest).Add(l.cfg.WindowDuration)
		if d := time.Until(retryAt); d > 0 {
			result.RetryAfter = d
		}
	}
	return result, nil
}

// IsWhitelisted reports whether the client IP bypasses limiting
func (l *Limiter) IsWhitelisted(ip string) bool {
	for _, allowed := range l.cfg.WhitelistedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}

func (l *Limiter) limitFor(limitType RateLimitType) int {
	switch limitType {
	case TypePublic:
		return l.cfg.PublicRequests
	case TypeAuth:
		return l.cfg.AuthRequests
	case TypeBooking:
		return l.cfg.BookingRequests
	case TypeAdmin:
		return l.cfg.AdminRequests
	case TypeHealth:
		return l.cfg.HealthRequests
	default:
		return l.cfg.DefaultRequests
	}
}
