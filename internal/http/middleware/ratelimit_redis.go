package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginWindowScript counts hits in a fixed window keyed per client. The
// expiry is attached on the first hit so the window cannot leak.
const loginWindowScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if hits > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const redisLimiterTimeout = 250 * time.Millisecond

// RedisLimiter shares the login throttle across instances. It fails
// open on Redis errors so a cache outage does not block sign-ins.
type RedisLimiter struct {
	client    *redis.Client
	script    *redis.Script
	keyPrefix string
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client:    client,
		script:    redis.NewScript(loginWindowScript),
		keyPrefix: "ratelimit:",
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" {
		return true
	}
	if limit <= 0 || window <= 0 {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	ttl := max(window.Milliseconds(), 1)
	allowed, err := l.script.Run(ctx, l.client, []string{l.keyPrefix + key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
