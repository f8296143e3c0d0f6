package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"SkiBuddy/internal/model"
	"SkiBuddy/pkg/logger"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
	); err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
