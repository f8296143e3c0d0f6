package model

import "SkiBuddy/internal/onboarding"

// NewProfileFromRecord 把提交流程组装的记录转换为数据库模型
func NewProfileFromRecord(r onboarding.ProfileRecord) *Profile {
	terrain := make([]string, 0, len(r.PreferredTerrain))
	for _, t := range r.PreferredTerrain {
		terrain = append(terrain, string(t))
	}

	urls := r.PhotoReferences
	if urls == nil {
		urls = []string{}
	}

	return &Profile{
		ID:               r.ID,
		Email:            r.Email,
		Name:             r.Name,
		Birthday:         r.Birthday,
		Gender:           string(r.Gender),
		Location:         r.Location,
		YearsSkiing:      r.YearsSkiing,
		PreferredTerrain: terrain,
		SkillLevel:       string(r.SkillLevel),
		SpeedPreference:  string(r.SpeedPreference),
		PhotoURL:         r.MainPhotoReference,
		PhotoURLs:        urls,
	}
}
