package storage

import (
	"SkiBuddy/storage/database"
	"SkiBuddy/storage/mq"
	"SkiBuddy/storage/objectstore"
	"SkiBuddy/storage/redis"
)

// Init 统一初始化 storage 层
func Init() error {
	if err := InitWorker(); err != nil {
		return err
	}

	return objectstore.Init()
}

// InitWorker 消费者只用到数据库、Redis 和 MQ，不连接对象存储
func InitWorker() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	return mq.Init()
}
