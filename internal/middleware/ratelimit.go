package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// incrWindowScript 计数加一，只在窗口的第一次请求时设置过期时间，
// 保证窗口从第一次请求开始计时并按时重置。
var incrWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RateLimit 返回基于 Redis 固定窗口计数的限流中间件，按客户端 IP 限流。
// 多实例部署时共享计数。
func RateLimit(redisClient *redis.Client, keyPrefix string, maxRequests int, window time.Duration) gin.HandlerFunc {
	if redisClient == nil {
		panic("Redis client cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RateLimit middleware")
	}
	if window <= 0 {
		panic("window duration must be positive for RateLimit middleware")
	}

	return func(c *gin.Context) {
		key := keyPrefix + "ratelimit:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := incrWindowScript.Run(ctx, redisClient, []string{key}, window.Milliseconds()).Int64()
		if err != nil {
			// Redis 故障时放行，不让限流拖垮整个 API
			logrus.WithError(err).Error("RateLimit: Redis script failed")
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

// limiterEntry 保存一个令牌桶及其最近使用时间
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter 是进程内按 IP 的令牌桶限流器，未配置 Redis 时使用。
type LocalRateLimiter struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
	lastSweep  time.Time
}

// NewLocalRateLimiter 按 maxRequests/window 的平均速率创建限流器，突发量为 maxRequests。
func NewLocalRateLimiter(maxRequests int, window time.Duration) *LocalRateLimiter {
	if maxRequests <= 0 || window <= 0 {
		panic("maxRequests and window must be positive for LocalRateLimiter")
	}
	return &LocalRateLimiter{
		entries:    make(map[string]*limiterEntry),
		limit:      rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:      maxRequests,
		staleAfter: 10 * time.Minute,
	}
}

func (l *LocalRateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// 每分钟最多清理一次长时间未出现的 key，避免 map 无限增长
	if now.Sub(l.lastSweep) > time.Minute {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.staleAfter {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Middleware 返回 Gin 中间件
func (l *LocalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
