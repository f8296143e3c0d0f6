package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	ri "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"SkiBuddy/pkg/logger"
	"SkiBuddy/storage/redis"
)

const (
	// 空值缓存标识
	emptyValueFlag = "__EMPTY__"
	// 空值缓存TTL，较短时间避免长期占用
	emptyValueTTL = 5 * time.Minute
	// 防雪崩随机延迟范围
	breakerRandomDelayMax = 50 * time.Millisecond
)

// ProtectedCache 带保护的缓存包装器：空值缓存防穿透，随机延迟防雪崩，熔断防 Redis 故障拖垮请求
type ProtectedCache struct {
	keyPrefix string
	ttl       time.Duration
	emptyTTL  time.Duration
	breaker   *CircuitBreaker
}

// NewProtectedCache 创建受保护的缓存实例，breaker 可为空
func NewProtectedCache(keyPrefix string, ttl time.Duration, breaker *CircuitBreaker) *ProtectedCache {
	return &ProtectedCache{
		keyPrefix: keyPrefix,
		ttl:       ttl,
		emptyTTL:  emptyValueTTL,
		breaker:   breaker,
	}
}

func (pc *ProtectedCache) key(key string) string {
	return redis.Key(pc.keyPrefix, key)
}

func (pc *ProtectedCache) call(ctx context.Context, op func(ctx context.Context) error) error {
	if pc.breaker == nil {
		return op(ctx)
	}
	return pc.breaker.Call(ctx, op)
}

// Set 设置缓存，value 为 nil 时写入空值标识
func (pc *ProtectedCache) Set(ctx context.Context, key string, value interface{}) error {
	data := emptyValueFlag
	ttl := pc.emptyTTL

	if value != nil {
		dataBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal cache value: %w", err)
		}
		data = string(dataBytes)
		ttl = pc.ttl
	}

	return pc.call(ctx, func(ctx context.Context) error {
		return redis.Client().Set(ctx, pc.key(key), data, ttl).Err()
	})
}

// Get 获取缓存。hit 为 true 且 empty 为 true 表示命中空值
func (pc *ProtectedCache) Get(ctx context.Context, key string, dest interface{}) (hit bool, empty bool, err error) {
	if err := pc.addBreakerDelay(ctx); err != nil {
		return false, false, err
	}

	var data string
	err = pc.call(ctx, func(ctx context.Context) error {
		var getErr error
		data, getErr = redis.Client().Get(ctx, pc.key(key)).Result()
		if errors.Is(getErr, ri.Nil) {
			return nil // 未命中不计入熔断
		}
		return getErr
	})
	if err != nil {
		return false, false, fmt.Errorf("failed to get cache: %w", err)
	}
	if data == "" {
		return false, false, nil
	}
	if data == emptyValueFlag {
		return true, true, nil
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Logger.Warn("Failed to unmarshal cache value, treat as miss",
			zap.String("key", pc.key(key)),
			zap.Error(err),
		)
		return false, false, nil
	}
	return true, false, nil
}

// Delete 删除缓存
func (pc *ProtectedCache) Delete(ctx context.Context, key string) error {
	return pc.call(ctx, func(ctx context.Context) error {
		return redis.Client().Del(ctx, pc.key(key)).Err()
	})
}

// addBreakerDelay 添加防雪崩随机延迟
func (pc *ProtectedCache) addBreakerDelay(ctx context.Context) error {
	delay := time.Duration(rand.Int63n(int64(breakerRandomDelayMax)))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// 预定义的缓存实例
var (
	ProfileProtectedCache = NewProtectedCache("profile", 24*time.Hour, ProfileBreaker)
)
