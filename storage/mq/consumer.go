package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	mqotel "SkiBuddy/pkg/mq"
)

type MessageHandler func(ctx context.Context, body []byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume 阻塞消费直到 ctx 结束或 channel 被关闭。
// 处理成功或返回 SkipMessageError 时 ack；其他错误首次投递时重新入队，重复投递时丢弃。
func Consume(ctx context.Context, opts ConsumeOptions) error {
	c := Connection()
	if c == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := c.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.ConsumeWithContext(
		ctx,
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			handleDelivery(ctx, opts, msg)
		}
	}
}

func handleDelivery(ctx context.Context, opts ConsumeOptions, msg amqp.Delivery) {
	msgCtx, span := mqotel.StartConsumeSpan(ctx, opts.Queue, msg)
	defer span.End()

	err := opts.Handler(msgCtx, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.IsSkipMessageError(err):
		logger.Logger.Warn("Skip message",
			zap.String("queue", opts.Queue),
			zap.String("message_id", msg.MessageId),
			zap.Error(err),
		)
		_ = msg.Ack(false)
	default:
		span.SetStatus(codes.Error, err.Error())
		logger.Logger.Error("Failed to process message",
			zap.String("queue", opts.Queue),
			zap.String("consumer_tag", opts.ConsumerTag),
			zap.String("message_id", msg.MessageId),
			zap.Bool("redelivered", msg.Redelivered),
			zap.Error(err),
		)
		_ = msg.Nack(false, !msg.Redelivered)
	}
}
