package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"SkiBuddy/internal/cache"
	"SkiBuddy/internal/model"
	"SkiBuddy/internal/model/dto"
	"SkiBuddy/internal/repository"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
)

// ProfileReader 资料读取
type ProfileReader interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}

// ProfileCache 资料缓存，hit 且 profile 为 nil 表示命中空值
type ProfileCache interface {
	Get(ctx context.Context, userID string) (profile *model.Profile, hit bool, err error)
	Set(ctx context.Context, userID string, profile *model.Profile) error
}

type redisProfileCache struct{}

func (redisProfileCache) Get(ctx context.Context, userID string) (*model.Profile, bool, error) {
	return cache.GetProfile(ctx, userID)
}

func (redisProfileCache) Set(ctx context.Context, userID string, profile *model.Profile) error {
	return cache.SetProfile(ctx, userID, profile)
}

var (
	profileService *ProfileService
	profileOnce    sync.Once
)

func Profile() *ProfileService {
	profileOnce.Do(func() {
		profileService = NewProfileService(repository.NewProfileRepository(nil), redisProfileCache{})
	})
	return profileService
}

type ProfileService struct {
	profiles ProfileReader
	cache    ProfileCache
}

func NewProfileService(profiles ProfileReader, cache ProfileCache) *ProfileService {
	return &ProfileService{profiles: profiles, cache: cache}
}

// GetMine 先读缓存，未命中查库并回填。缓存故障时直接查库
func (s *ProfileService) GetMine(ctx context.Context, userID string) (*dto.ProfileData, error) {
	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		logger.Logger.Warn("Failed to read profile cache, falling back to database",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	} else if hit {
		if cached == nil {
			return nil, pkgerrors.ProfileNotFound
		}
		return dto.NewProfileData(cached), nil
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ProfileNotFound) {
			s.fill(ctx, userID, nil)
		}
		return nil, err
	}

	s.fill(ctx, userID, profile)
	return dto.NewProfileData(profile), nil
}

func (s *ProfileService) fill(ctx context.Context, userID string, profile *model.Profile) {
	if err := s.cache.Set(ctx, userID, profile); err != nil {
		logger.Logger.Warn("Failed to fill profile cache",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
