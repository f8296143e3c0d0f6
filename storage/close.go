package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"SkiBuddy/pkg/logger"
	"SkiBuddy/storage/database"
	"SkiBuddy/storage/mq"
	"SkiBuddy/storage/redis"
)

type closer struct {
	name  string
	close func(context.Context) error
}

// Close 优雅关闭所有存储连接。
// 先停 MQ 不再收发消息，再关 Redis，最后关数据库。
// minio 客户端基于 http.Client，无需显式关闭。
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	for _, c := range []closer{
		{name: "message queue", close: mq.Close},
		{name: "redis", close: redis.Close},
		{name: "database", close: database.Close},
	} {
		if err := c.close(ctx); err != nil {
			logger.Logger.Error("Failed to close storage connection", zap.String("component", c.name), zap.Error(err))
			continue
		}
		logger.Logger.Info("Storage connection closed", zap.String("component", c.name))
	}

	logger.Logger.Info("All storage connections closed")
}
