package cache

import (
	"context"
	"time"

	"SkiBuddy/storage/redis"
	"SkiBuddy/utils"
)

const (
	tokenPrefix = "token"
)

// SetRefreshToken 存储 refresh token 的摘要到 Redis，每个用户只保留最新一个
// Key: {prefix}:token:refresh:{user_id}
func SetRefreshToken(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	key := redis.Key(tokenPrefix, "refresh", userID)
	return redis.Client().Set(ctx, key, utils.HashToken(refreshToken), ttl).Err()
}

// GetRefreshToken 从 Redis 获取 refresh token 摘要
func GetRefreshToken(ctx context.Context, userID string) (string, error) {
	key := redis.Key(tokenPrefix, "refresh", userID)
	return redis.Client().Get(ctx, key).Result()
}

// DeleteRefreshToken 删除 refresh token（用于登出或 token 失效）
func DeleteRefreshToken(ctx context.Context, userID string) error {
	key := redis.Key(tokenPrefix, "refresh", userID)
	return redis.Client().Del(ctx, key).Err()
}

// ValidateRefreshTokenExists 检查 refresh token 是否存在且匹配
func ValidateRefreshTokenExists(ctx context.Context, userID, refreshToken string) bool {
	storedToken, err := GetRefreshToken(ctx, userID)
	if err != nil {
		return false
	}
	return storedToken == utils.HashToken(refreshToken)
}
