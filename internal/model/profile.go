package model

import "time"

// Profile 滑雪资料，每个用户一条，主键为用户的 public id
type Profile struct {
	ID               string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Email            string    `gorm:"type:varchar(255);not null" json:"email"`
	Name             string    `gorm:"type:varchar(128);not null" json:"name"`
	Birthday         string    `gorm:"type:varchar(32);not null" json:"birthday"` // 期望为 YYYY-MM-DD，格式异常时原样保存
	Gender           string    `gorm:"type:varchar(16);not null" json:"gender"`
	Location         string    `gorm:"type:varchar(255);not null" json:"location"`
	YearsSkiing      *int      `json:"years_skiing"`
	PreferredTerrain []string  `gorm:"type:jsonb;serializer:json;not null" json:"preferred_terrain"`
	SkillLevel       string    `gorm:"type:varchar(16);not null" json:"skill_level"`
	SpeedPreference  string    `gorm:"type:varchar(16);not null" json:"speed_preference"`
	PhotoURL         *string   `gorm:"type:text" json:"photo_url"`
	PhotoURLs        []string  `gorm:"type:jsonb;serializer:json;not null" json:"photo_urls"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
