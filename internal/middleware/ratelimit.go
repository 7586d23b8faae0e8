package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shorturl-platform/internal/config"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimit 按客户端 IP 限流。
// 配置了 Redis 时使用固定窗口计数, 多实例共享配额; 否则在进程内为每个 IP 维护令牌桶。
func RateLimit(redisClient *redis.Client, limitConfig *config.Limit, logger *zap.SugaredLogger) gin.HandlerFunc {
	if !limitConfig.Enabled || limitConfig.Requests <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var allow func(ctx context.Context, ip string) bool
	if redisClient != nil {
		allow = redisWindow(redisClient, limitConfig, logger.Named("rate_limit"))
	} else {
		allow = localBuckets(limitConfig)
	}

	return func(c *gin.Context) {
		// 跳过特定路径
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !allow(c.Request.Context(), c.ClientIP()) {
			abort(c, http.StatusTooManyRequests, "rate_limited", "请求过于频繁，请稍后再试")
			return
		}

		c.Next()
	}
}

// redisWindow 每分钟一个计数窗口, Redis 不可用时放行
func redisWindow(rdb *redis.Client, limitConfig *config.Limit, logger *zap.SugaredLogger) func(context.Context, string) bool {
	quota := limitConfig.Requests + limitConfig.Burst
	return func(ctx context.Context, ip string) bool {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		window := time.Now().Unix() / 60
		key := rateLimitKeyPrefix + ip + ":" + strconv.FormatInt(window, 10)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warnw("限流计数失败, 放行请求", "ip", ip, "error", err)
			return true
		}
		return incr.Val() <= quota
	}
}

// localBuckets 进程内每个 IP 一个令牌桶
func localBuckets(limitConfig *config.Limit) func(context.Context, string) bool {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	every := rate.Every(time.Minute / time.Duration(limitConfig.Requests))
	burst := int(limitConfig.Burst)
	if burst <= 0 {
		burst = 1
	}

	return func(_ context.Context, ip string) bool {
		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(every, burst)
			limiters[ip] = limiter
		}
		mu.Unlock()
		return limiter.Allow()
	}
}
