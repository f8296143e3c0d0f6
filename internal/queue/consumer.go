package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"SkiBuddy/internal/cache"
	"SkiBuddy/internal/model"
	"SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/storage/mq"
)

// ProfileCreatedHandler 处理资料创建事件的业务逻辑
type ProfileCreatedHandler interface {
	HandleProfileCreated(ctx context.Context, msg model.ProfileCreatedMessage) error
}

// Idempotency 消息幂等标记
type Idempotency interface {
	TryMark(ctx context.Context, messageID string) (bool, error)
	Done(ctx context.Context, messageID string) error
	Unmark(ctx context.Context, messageID string) error
}

type redisIdempotency struct{}

func (redisIdempotency) TryMark(ctx context.Context, id string) (bool, error) {
	return cache.TryMarkMessageProcessing(ctx, id, 24*time.Hour)
}

func (redisIdempotency) Done(ctx context.Context, id string) error {
	return cache.MarkMessageProcessed(ctx, id, 48*time.Hour)
}

func (redisIdempotency) Unmark(ctx context.Context, id string) error {
	return cache.UnmarkMessageProcessing(ctx, id)
}

// cacheWarmer 默认处理：把新资料写入资料缓存
type cacheWarmer struct{}

func (cacheWarmer) HandleProfileCreated(ctx context.Context, msg model.ProfileCreatedMessage) error {
	profile := msg.Profile
	return cache.SetProfile(ctx, msg.ProfileID, &profile)
}

// NewProfileCreatedHandler 解码 + 幂等检查 + 业务处理
func NewProfileCreatedHandler(h ProfileCreatedHandler, idem Idempotency) mq.MessageHandler {
	return func(ctx context.Context, body []byte) error {
		var msg model.ProfileCreatedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 格式错误的消息重试也不会成功
			return &errors.SkipMessageError{Reason: fmt.Sprintf("invalid profile created message: %v", err)}
		}
		if msg.MessageID == "" || msg.ProfileID == "" {
			return &errors.SkipMessageError{Reason: "profile created message missing ids"}
		}

		marked, err := idem.TryMark(ctx, msg.MessageID)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，预热缓存是幂等的
		} else if !marked {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		if err := h.HandleProfileCreated(ctx, msg); err != nil {
			if unmarkErr := idem.Unmark(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return fmt.Errorf("handle profile created: %w", err)
		}

		if err := idem.Done(ctx, msg.MessageID); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		logger.Logger.Info("Processed profile created message",
			zap.String("message_id", msg.MessageID),
			zap.String("profile_id", msg.ProfileID),
		)
		return nil
	}
}

// StartProfileCreatedConsumer 启动资料创建事件消费者，阻塞直到 ctx 结束
func StartProfileCreatedConsumer(ctx context.Context) error {
	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         mq.ProfileCreatedQueue,
		ConsumerTag:   "profile_created_consumer",
		PrefetchCount: 10,
		Handler:       NewProfileCreatedHandler(cacheWarmer{}, redisIdempotency{}),
	})
}
