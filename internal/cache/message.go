package cache

import (
	"context"
	"time"

	"SkiBuddy/storage/redis"
)

const (
	messagePrefix = "message"
)

// TryMarkMessageProcessing 使用 SETNX 原子性地标记消息正在处理。
// 返回 false 表示消息已处理或正在被其他消费者处理
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	return redis.Client().SetNX(ctx, redis.Key(messagePrefix, messageID), "processing", ttl).Result()
}

// MarkMessageProcessed 处理完成后标记并延长 TTL
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	return redis.Client().Set(ctx, redis.Key(messagePrefix, messageID), "done", ttl).Err()
}

// UnmarkMessageProcessing 处理失败时撤销标记，允许重投后再次处理
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	return redis.Client().Del(ctx, redis.Key(messagePrefix, messageID)).Err()
}
