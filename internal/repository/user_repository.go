package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"SkiBuddy/internal/model"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/storage/database"
)

// UserRepository users 表访问
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository db 为空时使用全局连接
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) conn(ctx context.Context) (*gorm.DB, error) {
	db := r.db
	if db == nil {
		db = database.DB()
	}
	if db == nil {
		return nil, pkgerrors.ErrDatabaseConnectionNil
	}
	return db.WithContext(ctx), nil
}

// Create 新建用户，邮箱重复时返回 EmailAlreadyRegistered
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.EmailAlreadyRegistered
		}
		return err
	}
	return nil
}

// FindByEmail 未找到时返回 ErrUserNotFound
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByPublicID 根据对外 ID 查询，API 中的 user id 都是 public_id
func (r *UserRepository) FindByPublicID(ctx context.Context, publicID string) (*model.User, error) {
	id, err := strconv.ParseInt(publicID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidUserID
	}
	return r.first(ctx, "public_id = ?", id)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MarkActive 资料创建成功后把用户状态置为 active
func (r *UserRepository) MarkActive(ctx context.Context, publicID string) error {
	id, err := strconv.ParseInt(publicID, 10, 64)
	if err != nil {
		return pkgerrors.InvalidUserID
	}

	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	return db.Model(&model.User{}).
		Where("public_id = ?", id).
		Update("status", model.UserStatusActive).Error
}
