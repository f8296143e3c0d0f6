package model

import (
	"strconv"
	"time"
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusOnboarding UserStatus = "onboarding" // 已注册，尚未完成资料引导
	UserStatusActive     UserStatus = "active"     // 资料已创建，正常使用
)

// User 用户模型。邮箱唯一，不做软删除
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID     int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Status       UserStatus `gorm:"type:varchar(16);not null;default:'onboarding';index:idx_users_status" json:"status"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// PublicIDString 对外使用的字符串 ID
func (u User) PublicIDString() string {
	return strconv.FormatInt(u.PublicID, 10)
}
