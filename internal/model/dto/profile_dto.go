package dto

import (
	"time"

	"SkiBuddy/internal/model"
)

// ========== Profile 相关 DTO ==========

// ProfileData 资料页展示数据
type ProfileData struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Birthday         string    `json:"birthday"`
	Gender           string    `json:"gender"`
	Location         string    `json:"location"`
	YearsSkiing      *int      `json:"years_skiing"`
	PreferredTerrain []string  `json:"preferred_terrain"`
	SkillLevel       string    `json:"skill_level"`
	SpeedPreference  string    `json:"speed_preference"`
	PhotoURL         *string   `json:"photo_url"`
	PhotoURLs        []string  `json:"photo_urls"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// NewProfileData 从模型转换
func NewProfileData(p *model.Profile) *ProfileData {
	if p == nil {
		return nil
	}
	return &ProfileData{
		ID:               p.ID,
		Email:            p.Email,
		Name:             p.Name,
		Birthday:         p.Birthday,
		Gender:           p.Gender,
		Location:         p.Location,
		YearsSkiing:      p.YearsSkiing,
		PreferredTerrain: p.PreferredTerrain,
		SkillLevel:       p.SkillLevel,
		SpeedPreference:  p.SpeedPreference,
		PhotoURL:         p.PhotoURL,
		PhotoURLs:        p.PhotoURLs,
		CreatedAt:        p.CreatedAt,
	}
}
