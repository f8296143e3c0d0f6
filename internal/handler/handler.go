package handler

import (
	"context"

	"SkiBuddy/config"
	"SkiBuddy/internal/model/dto"
	"SkiBuddy/internal/onboarding"
	"SkiBuddy/internal/service"
)

// AuthAPI 注册登录
type AuthAPI interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}

// UserAPI 用户状态
type UserAPI interface {
	GetUserStatus(ctx context.Context, userID string) (*dto.UserStatusData, error)
}

// ProfileAPI 资料查询
type ProfileAPI interface {
	GetMine(ctx context.Context, userID string) (*dto.ProfileData, error)
}

// OnboardingAPI 资料引导向导
type OnboardingAPI interface {
	Current(ctx context.Context, userID string) (*dto.OnboardingState, error)
	Edit(ctx context.Context, userID string, edit onboarding.Edit) (*dto.OnboardingState, error)
	Advance(ctx context.Context, userID string) (*dto.OnboardingAdvanceResponse, error)
	Retreat(ctx context.Context, userID string) (*dto.OnboardingState, error)
	AddPhoto(ctx context.Context, userID string, src service.PhotoSource) (*dto.AddPhotoResponse, error)
	RemovePhoto(ctx context.Context, userID string, index int) (*dto.OnboardingState, error)
	Abandon(ctx context.Context, userID string) error
}

// Handler HTTP 处理器集合
type Handler struct {
	auth          AuthAPI
	users         UserAPI
	profiles      ProfileAPI
	onboarding    OnboardingAPI
	photoMaxBytes int64
}

func New(auth AuthAPI, users UserAPI, profiles ProfileAPI, onboarding OnboardingAPI, photoMaxBytes int64) *Handler {
	return &Handler{
		auth:          auth,
		users:         users,
		profiles:      profiles,
		onboarding:    onboarding,
		photoMaxBytes: photoMaxBytes,
	}
}

// Default 使用全局 service 单例
func Default() *Handler {
	return New(service.Auth(), service.User(), service.Profile(), service.Onboarding(), config.Cfg.PhotoMaxBytes)
}
