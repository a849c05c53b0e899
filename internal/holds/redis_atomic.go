package holds

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Lua scripts keep the purge-count-write sequence atomic. Stay ranges
// are encoded as "inDay:outDay" epoch-day pairs in the per-villa hash;
// a companion sorted set ordered by expiry lets each call lazily purge
// holds whose TTL has lapsed.

const acquireHoldScript = `
local now = tonumber(ARGV[5])

local expired = redis.call('ZRANGEBYSCORE', KEYS[2], '-inf', now)
for i = 1, #expired do
	redis.call('HDEL', KEYS[1], expired[i])
	redis.call('ZREM', KEYS[2], expired[i])
end

local inDay = tonumber(ARGV[2])
local outDay = tonumber(ARGV[3])
local remaining = tonumber(ARGV[4])

local active = 0
local entries = redis.call('HGETALL', KEYS[1])
for i = 2, #entries, 2 do
	local sep = string.find(entries[i], ':')
	local hIn = tonumber(string.sub(entries[i], 1, sep - 1))
	local hOut = tonumber(string.sub(entries[i], sep + 1))
	if hIn < outDay and hOut > inDay then
		active = active + 1
	end
end

if active >= remaining then
	return {0, active}
end

local ttl = tonumber(ARGV[6])
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2] .. ':' .. ARGV[3])
redis.call('ZADD', KEYS[2], now + ttl, ARGV[1])
redis.call('HSET', KEYS[3],
	'villa', ARGV[7],
	'check_in', ARGV[8],
	'check_out', ARGV[9],
	'expires_at', tostring(now + ttl))
redis.call('EXPIRE', KEYS[3], ttl)
return {1, active + 1}
`

const releaseHoldScript = `
local removed = redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('ZREM', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[3])
return removed
`

const countHoldsScript = `
local now = tonumber(ARGV[3])

local expired = redis.call('ZRANGEBYSCORE', KEYS[2], '-inf', now)
for i = 1, #expired do
	redis.call('HDEL', KEYS[1], expired[i])
	redis.call('ZREM', KEYS[2], expired[i])
end

local inDay = tonumber(ARGV[1])
local outDay = tonumber(ARGV[2])

local active = 0
local entries = redis.call('HGETALL', KEYS[1])
for i = 2, #entries, 2 do
	local sep = string.find(entries[i], ':')
	local hIn = tonumber(string.sub(entries[i], 1, sep - 1))
	local hOut = tonumber(string.sub(entries[i], sep + 1))
	if hIn < outDay and hOut > inDay then
		active = active + 1
	end
end
return active
`

// Engine runs the atomic hold scripts against Redis
type Engine struct {
	redis      *redis.Client
	acquireSHA string
	releaseSHA string
	countSHA   string
}

func NewEngine(client *redis.Client) *Engine {
	return &Engine{redis: client}
}

// PreloadScripts loads every script into the Redis script cache so the
// hot path can run EVALSHA
func (e *Engine) PreloadScripts(ctx context.Context) error {
	var err error
	if e.acquireSHA, err = e.redis.ScriptLoad(ctx, acquireHoldScript).Result(); err != nil {
		return fmt.Errorf("failed to preload acquire script: %w", err)
	}
	if e.releaseSHA, err = e.redis.ScriptLoad(ctx, releaseHoldScript).Result(); err != nil {
		return fmt.Errorf("failed to preload release script: %w", err)
	}
	if e.countSHA, err = e.redis.ScriptLoad(ctx, countHoldsScript).Result(); err != nil {
		return fmt.Errorf("failed to preload count script: %w", err)
	}
	return nil
}

// AcquireHold atomically records a hold if fewer than remainingUnits
// active holds overlap the requested range. Returns the number of
// overlapping holds after the call.
func (e *Engine) AcquireHold(ctx context.Context, villaSlug, holdID string, inDay, outDay, remainingUnits, nowUnix, ttlSeconds int64, checkIn, checkOut string) (bool, int64, error) {
	keys := []string{holdsKey(villaSlug), expiryKey(villaSlug), metaKey(holdID)}
	args := []interface{}{holdID, inDay, outDay, remainingUnits, nowUnix, ttlSeconds, villaSlug, checkIn, checkOut}

	result, err := e.eval(ctx, e.acquireSHA, acquireHoldScript, keys, args)
	if err != nil {
		return false, 0, fmt.Errorf("acquire hold script failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected acquire script result: %v", result)
	}
	granted, _ := values[0].(int64)
	active, _ := values[1].(int64)
	return granted == 1, active, nil
}

// ReleaseHold removes a hold. Returns false when nothing was held.
func (e *Engine) ReleaseHold(ctx context.Context, villaSlug, holdID string) (bool, error) {
	keys := []string{holdsKey(villaSlug), expiryKey(villaSlug), metaKey(holdID)}

	result, err := e.eval(ctx, e.releaseSHA, releaseHoldScript, keys, []interface{}{holdID})
	if err != nil {
		return false, fmt.Errorf("release hold script failed: %w", err)
	}
	removed, _ := result.(int64)
	return removed > 0, nil
}

// CountActiveHolds counts unexpired holds overlapping the range
func (e *Engine) CountActiveHolds(ctx context.Context, villaSlug string, inDay, outDay, nowUnix int64) (int64, error) {
	keys := []string{holdsKey(villaSlug), expiryKey(villaSlug)}

	result, err := e.eval(ctx, e.countSHA, countHoldsScript, keys, []interface{}{inDay, outDay, nowUnix})
	if err != nil {
		return 0, fmt.Errorf("count holds script failed: %w", err)
	}
	count, _ := result.(int64)
	return count, nil
}

// GetHoldMeta reads the metadata key for a hold
func (e *Engine) GetHoldMeta(ctx context.Context, holdID string) (map[string]string, error) {
	meta, err := e.redis.HGetAll(ctx, metaKey(holdID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hold metadata: %w", err)
	}
	if len(meta) == 0 {
		return nil, ErrHoldNotFound
	}
	return meta, nil
}

// eval runs EVALSHA and falls back to EVAL when the script cache was
// flushed or never primed
func (e *Engine) eval(ctx context.Context, sha, script string, keys []string, args []interface{}) (interface{}, error) {
	if sha != "" {
		result, err := e.redis.EvalSha(ctx, sha, keys, args...).Result()
		if err == nil {
			return result, nil
		}
		if !strings.Contains(err.Error(), "NOSCRIPT") {
			return nil, err
		}
	}
	return e.redis.Eval(ctx, script, keys, args...).Result()
}

func holdsKey(villaSlug string) string {
	return "villa_holds:" + villaSlug
}

func expiryKey(villaSlug string) string {
	return "villa_holds_exp:" + villaSlug
}

func metaKey(holdID string) string {
	return "hold:" + holdID
}
