package service

import (
	"context"
	"sync"

	"SkiBuddy/internal/model/dto"
	"SkiBuddy/internal/repository"
)

// api 中设计的 user_ID 是 public_id

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = NewUserService(repository.NewUserRepository(nil), repository.NewProfileRepository(nil))
	})
	return userService
}

type UserService struct {
	users    UserStore
	profiles ProfileChecker
}

func NewUserService(users UserStore, profiles ProfileChecker) *UserService {
	return &UserService{users: users, profiles: profiles}
}

// GetUserStatus 入口路由：有资料进入首页，否则进入引导
func (s *UserService) GetUserStatus(ctx context.Context, userID string) (*dto.UserStatusData, error) {
	user, err := s.users.FindByPublicID(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := nextStep(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatusData{
		ID:         user.PublicIDString(),
		Email:      user.Email,
		Status:     string(user.Status),
		HasProfile: next == dto.NextStepHome,
		NextStep:   next,
	}, nil
}
