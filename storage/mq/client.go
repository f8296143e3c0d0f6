package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"SkiBuddy/config"
	"SkiBuddy/pkg/logger"
)

// 业务事件的交换机和队列
const (
	EventsExchange        = "skibuddy.events"
	ProfileCreatedQueue   = "profile.created"
	ProfileCreatedRouting = "profile.created"
)

var (
	conn     *amqp.Connection
	connMu   sync.RWMutex
	initOnce sync.Once
	initErr  error
)

func Init() error {
	initOnce.Do(func() {
		c, err := amqp.Dial(config.Cfg.GetRabbitMQURL())
		if err != nil {
			initErr = fmt.Errorf("dial rabbitmq: %w", err)
			return
		}

		connMu.Lock()
		conn = c
		connMu.Unlock()

		if err := DeclareTopology(); err != nil {
			initErr = err
			return
		}

		logger.Logger.Info("RabbitMQ initialized successfully",
			zap.String("exchange", EventsExchange),
		)
	})

	return initErr
}

// Connection 返回当前连接，未初始化时为 nil
func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

// DeclareTopology 声明交换机、队列和绑定关系，重复声明是幂等的
func DeclareTopology() error {
	c := Connection()
	if c == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := c.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(EventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	if _, err := ch.QueueDeclare(ProfileCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", ProfileCreatedQueue, err)
	}
	if err := ch.QueueBind(ProfileCreatedQueue, ProfileCreatedRouting, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", ProfileCreatedQueue, err)
	}
	return nil
}

func Close(ctx context.Context) error {
	closePublisherChannel()

	connMu.Lock()
	defer connMu.Unlock()
	if conn == nil || conn.IsClosed() {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
