package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"SkiBuddy/config"
	"SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/response"
	"SkiBuddy/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口（秒）
	Window int
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
	// 是否按用户ID限流（需要认证）
	ByUserID bool
	// 是否按IP限流
	ByIP bool
	// 阻塞时长（秒），超过限制后禁止访问的时间
	BlockDuration int
}

// DefaultRateLimitConfig 默认限流配置，MaxRequests 会按 RATE_LIMIT_RPS 换算
var DefaultRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   100,
	KeyPrefix:     "rate:limit",
	ByUserID:      false,
	ByIP:          true,
	BlockDuration: 60,
}

// AuthRateLimitConfig 注册、登录、刷新令牌，按 IP 限流
var AuthRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   10,
	KeyPrefix:     "auth:rate",
	ByUserID:      false,
	ByIP:          true,
	BlockDuration: 900, // 阻塞15分钟
}

// OnboardingWriteRateLimitConfig 引导流程写操作（编辑、前进、上传照片），按用户限流
var OnboardingWriteRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   60,
	KeyPrefix:     "onboarding:rate",
	ByUserID:      true,
	ByIP:          true,
	BlockDuration: 120,
}

// RateLimiter 限流器
type RateLimiter struct {
	config RateLimitConfig
	client redislib.Cmdable
}

func NewRateLimiter(cfg RateLimitConfig, client redislib.Cmdable) *RateLimiter {
	return &RateLimiter{
		config: cfg,
		client: client,
	}
}

// identifier 限流对象：优先用户ID，其次客户端 IP
func (rl *RateLimiter) identifier(ctx context.Context, c *app.RequestContext) string {
	if rl.config.ByUserID {
		if userID, exists := GetUserID(ctx, c); exists {
			return "user:" + userID
		}
	}

	if rl.config.ByIP {
		return "ip:" + c.ClientIP()
	}

	return "global"
}

func (rl *RateLimiter) windowKey(identifier string) string {
	return redis.Key(rl.config.KeyPrefix, identifier)
}

func (rl *RateLimiter) blockKey(identifier string) string {
	return redis.Key(rl.config.KeyPrefix, "block", identifier)
}

// Allow 检查是否允许请求，使用滑动窗口算法
func (rl *RateLimiter) Allow(ctx context.Context, identifier string) (bool, int, error) {
	key := rl.windowKey(identifier)
	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.config.Window) * time.Second)

	// zset 来实现滑动窗口限流
	pipe := rl.client.Pipeline()

	// 移除窗口开始时间之前的所有请求记录
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))

	// 同一纳秒内可能有多个请求，member 加上随机后缀
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})

	zcardCmd := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, time.Duration(rl.config.Window+10)*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcardCmd.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) Block(ctx context.Context, identifier string) error {
	return rl.client.Set(ctx, rl.blockKey(identifier), "1", time.Duration(rl.config.BlockDuration)*time.Second).Err()
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, identifier string) (bool, error) {
	result, err := rl.client.Exists(ctx, rl.blockKey(identifier)).Result()
	return result > 0, err
}

// RateLimitMiddleware 创建限流中间件。RATE_LIMIT_ENABLED=false 时直接放行；
// Redis 不可用时放行并记录日志，不因为限流拖垮主流程
func RateLimitMiddleware(cfg RateLimitConfig) app.HandlerFunc {
	if !config.Cfg.RateLimitEnabled {
		return func(ctx context.Context, c *app.RequestContext) {
			c.Next(ctx)
		}
	}

	return func(ctx context.Context, c *app.RequestContext) {
		limiter := NewRateLimiter(cfg, redis.Client())
		id := limiter.identifier(ctx, c)

		blocked, err := limiter.IsBlocked(ctx, id)
		if err != nil {
			logger.Logger.Warn("Failed to check block status", zap.Error(err))
			c.Next(ctx)
			return
		}

		if blocked {
			c.Abort()
			response.Error(ctx, c, errors.TooManyRequests)
			return
		}

		allowed, count, err := limiter.Allow(ctx, id)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := cfg.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(cfg.Window)*time.Second).Unix(), 10))

		if !allowed {
			if err := limiter.Block(ctx, id); err != nil {
				logger.Logger.Warn("Failed to block client", zap.String("identifier", id), zap.Error(err))
			}

			c.Abort()
			response.Error(ctx, c, errors.TooManyRequests)
			return
		}

		c.Next(ctx)
	}
}

// GeneralRateLimitMiddleware 通用限流中间件
func GeneralRateLimitMiddleware() app.HandlerFunc {
	cfg := DefaultRateLimitConfig
	if config.Cfg.RateLimitRPS > 0 {
		cfg.MaxRequests = config.Cfg.RateLimitRPS * cfg.Window
	}
	return RateLimitMiddleware(cfg)
}

// AuthRateLimitMiddleware 认证相关限流（登录、注册等）
func AuthRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(AuthRateLimitConfig)
}

// OnboardingRateLimitMiddleware 引导流程写操作限流
func OnboardingRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(OnboardingWriteRateLimitConfig)
}
