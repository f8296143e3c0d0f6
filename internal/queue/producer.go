package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"SkiBuddy/internal/model"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/snowflake"
	"SkiBuddy/storage/mq"
)

// Publisher 事件发布，service 层通过它发布资料创建事件
type Publisher struct{}

// PublishProfileCreated 发布资料创建事件
func (Publisher) PublishProfileCreated(ctx context.Context, profile *model.Profile) error {
	return PublishProfileCreated(ctx, NewProfileCreatedMessage(profile))
}

// NewProfileCreatedMessage 组装事件消息，MessageID 在发布时补齐
func NewProfileCreatedMessage(profile *model.Profile) model.ProfileCreatedMessage {
	return model.ProfileCreatedMessage{
		ProfileID:  profile.ID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Profile:    *profile,
	}
}

// PublishProfileCreated 发布到 skibuddy.events / profile.created
func PublishProfileCreated(ctx context.Context, msg model.ProfileCreatedMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("profile_id", msg.ProfileID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("profile_created_%d", id)
	}

	if err := mq.PublishMessage(ctx, mq.EventsExchange, mq.ProfileCreatedRouting, msg.MessageID, msg); err != nil {
		logger.Logger.Error("Failed to publish profile created message",
			zap.String("profile_id", msg.ProfileID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published profile created message",
		zap.String("message_id", msg.MessageID),
		zap.String("profile_id", msg.ProfileID),
	)
	return nil
}
