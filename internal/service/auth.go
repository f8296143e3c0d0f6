package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"SkiBuddy/internal/cache"
	"SkiBuddy/internal/model"
	"SkiBuddy/internal/model/dto"
	"SkiBuddy/internal/repository"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/snowflake"
	"SkiBuddy/pkg/token"
	"SkiBuddy/utils"
)

// UserStore 注册登录需要的用户存储
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPublicID(ctx context.Context, publicID string) (*model.User, error)
}

// ProfileChecker 判断用户是否已有资料
type ProfileChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// RefreshTokenStore 每个用户最新的 refresh token
type RefreshTokenStore interface {
	Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	Matches(ctx context.Context, userID, refreshToken string) bool
}

type redisRefreshTokens struct{}

func (redisRefreshTokens) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	return cache.SetRefreshToken(ctx, userID, refreshToken, ttl)
}

func (redisRefreshTokens) Matches(ctx context.Context, userID, refreshToken string) bool {
	return cache.ValidateRefreshTokenExists(ctx, userID, refreshToken)
}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuthService(
			repository.NewUserRepository(nil),
			repository.NewProfileRepository(nil),
			redisRefreshTokens{},
			snowflake.NextID,
		)
	})
	return authService
}

type AuthService struct {
	users    UserStore
	profiles ProfileChecker
	tokens   RefreshTokenStore
	nextID   func() (int64, error)
}

func NewAuthService(users UserStore, profiles ProfileChecker, tokens RefreshTokenStore, nextID func() (int64, error)) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens, nextID: nextID}
}

// SignUp 邮箱注册，新用户处于 onboarding 状态
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, pkgerrors.InvalidEmail
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, pkgerrors.PasswordTooShort
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := s.nextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &model.User{
		PublicID:     publicID,
		Email:        email,
		PasswordHash: hash,
		Status:       model.UserStatusOnboarding,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.EmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("New user created",
		zap.Int64("public_id", publicID),
	)

	return s.issue(ctx, user, true, dto.NextStepOnboarding)
}

// SignIn 邮箱密码登录
func (s *AuthService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.InvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUserNotFound) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, pkgerrors.InvalidCredentials
	}

	next, err := nextStep(ctx, s.profiles, user)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, false, next)
}

// RefreshToken 校验 refresh token 与 Redis 中保存的是否一致，并轮换一组新 token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.ErrInvalidToken
	}
	if !s.tokens.Matches(ctx, userID, refreshToken) {
		return nil, pkgerrors.ErrInvalidToken
	}

	if _, err := s.users.FindByPublicID(ctx, userID); err != nil {
		if errors.Is(err, pkgerrors.ErrUserNotFound) {
			return nil, pkgerrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	pair, err := s.generate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (s *AuthService) issue(ctx context.Context, user *model.User, isNew bool, next string) (*dto.AuthResponse, error) {
	userID := user.PublicIDString()

	pair, err := s.generate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		NextStep:     next,
		User: dto.AuthUserSnapshot{
			ID:        userID,
			Email:     user.Email,
			Status:    string(user.Status),
			IsNewUser: isNew,
		},
	}, nil
}

func (s *AuthService) generate(ctx context.Context, userID string) (token.Pair, error) {
	pair, err := token.GenerateTokenPair(userID)
	if err != nil {
		return token.Pair{}, fmt.Errorf("failed to generate token: %w", err)
	}

	// 存储失败不影响本次登录，只是之后无法刷新
	if err := s.tokens.Save(ctx, userID, pair.RefreshToken, token.RefreshTTL()); err != nil {
		logger.Logger.Warn("Failed to store refresh token in Redis",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	return pair, nil
}

// nextStep 已有资料进入首页，否则进入引导
func nextStep(ctx context.Context, profiles ProfileChecker, user *model.User) (string, error) {
	if user.Status == model.UserStatusActive {
		return dto.NextStepHome, nil
	}

	exists, err := profiles.Exists(ctx, user.PublicIDString())
	if err != nil {
		return "", fmt.Errorf("failed to check profile: %w", err)
	}
	if exists {
		return dto.NextStepHome, nil
	}
	return dto.NextStepOnboarding, nil
}
