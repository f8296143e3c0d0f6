package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"SkiBuddy/internal/model"
	"SkiBuddy/internal/onboarding"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/storage/database"
)

// ProfileRepository profiles 表访问，同时实现 onboarding.ProfileStore
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) conn(ctx context.Context) (*gorm.DB, error) {
	db := r.db
	if db == nil {
		db = database.DB()
	}
	if db == nil {
		return nil, pkgerrors.ErrDatabaseConnectionNil
	}
	return db.WithContext(ctx), nil
}

// InsertProfile 写入一条资料，主键冲突返回 ProfileAlreadyExists
func (r *ProfileRepository) InsertProfile(ctx context.Context, record onboarding.ProfileRecord) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if err := db.Create(model.NewProfileFromRecord(record)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.ProfileAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID 读主库，保证刚写入的资料能立即读到
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var profile model.Profile
	if err := db.Clauses(dbresolver.Write).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Exists 入口路由判断用，允许走只读副本
func (r *ProfileRepository) Exists(ctx context.Context, id string) (bool, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Profile{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
