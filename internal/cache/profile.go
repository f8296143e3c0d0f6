package cache

import (
	"context"

	"SkiBuddy/internal/model"
)

// 用户资料缓存，资料页先读缓存，worker 收到 profile.created 后预热

// SetProfile 写入资料缓存，profile 为 nil 时写入空值防穿透
func SetProfile(ctx context.Context, userID string, profile *model.Profile) error {
	if profile == nil {
		return ProfileProtectedCache.Set(ctx, userID, nil)
	}
	return ProfileProtectedCache.Set(ctx, userID, profile)
}

// GetProfile 返回 (资料, 是否命中, error)。命中空值时资料为 nil 且 hit 为 true
func GetProfile(ctx context.Context, userID string) (*model.Profile, bool, error) {
	var profile model.Profile
	hit, empty, err := ProfileProtectedCache.Get(ctx, userID, &profile)
	if err != nil || !hit {
		return nil, false, err
	}
	if empty {
		return nil, true, nil
	}
	return &profile, true, nil
}

// DeleteProfile 删除资料缓存
func DeleteProfile(ctx context.Context, userID string) error {
	return ProfileProtectedCache.Delete(ctx, userID)
}
