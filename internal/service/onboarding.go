package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"SkiBuddy/config"
	"SkiBuddy/internal/cache"
	"SkiBuddy/internal/model"
	"SkiBuddy/internal/model/dto"
	"SkiBuddy/internal/onboarding"
	"SkiBuddy/internal/queue"
	"SkiBuddy/internal/repository"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/metrics"
	"SkiBuddy/storage/objectstore"
)

// WizardStore 向导草稿存储
type WizardStore interface {
	Load(ctx context.Context, userID string) (onboarding.Wizard, bool, error)
	Save(ctx context.Context, userID string, w onboarding.Wizard) error
	Discard(ctx context.Context, userID string) error
}

// AssetStager 暂存选中的照片，提交时作为 onboarding.AssetSource 读取
type AssetStager interface {
	onboarding.AssetSource
	Stage(ctx context.Context, userID string, data []byte) (string, error)
	DiscardAll(ctx context.Context, userID string) error
}

// SubmitLocker 每个用户的提交锁
type SubmitLocker interface {
	Acquire(ctx context.Context, userID string) (release func(context.Context) error, ok bool, err error)
}

// UserDirectory 查询与更新用户
type UserDirectory interface {
	FindByPublicID(ctx context.Context, publicID string) (*model.User, error)
	MarkActive(ctx context.Context, publicID string) error
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	PublishProfileCreated(ctx context.Context, profile *model.Profile) error
}

// PhotoSource 一次添加照片请求携带的图片。用户取消选择时 cancelled 为 true
type PhotoSource interface {
	Read(ctx context.Context, cfg onboarding.PickConfig) (data []byte, cancelled bool, err error)
}

var (
	onboardingService *OnboardingService
	onboardingOnce    sync.Once
)

// Onboarding 使用全局存储创建的单例，需在 storage.Init 之后调用
func Onboarding() *OnboardingService {
	onboardingOnce.Do(func() {
		onboardingService = NewOnboardingService(OnboardingDeps{
			Wizards:  cache.NewWizardCache(config.Cfg.OnboardingDraftTTL),
			Assets:   cache.NewAssetCache(config.Cfg.OnboardingDraftTTL),
			Locks:    cache.NewSubmitLock(config.Cfg.OnboardingSubmitLockTTL),
			Users:    repository.NewUserRepository(nil),
			Files:    objectstore.Default(),
			Profiles: repository.NewProfileRepository(nil),
			Events:   queue.Publisher{},
			Metrics:  metrics.Onboarding(),
		})
	})
	return onboardingService
}

// OnboardingDeps 构造 OnboardingService 所需的协作者
type OnboardingDeps struct {
	Wizards  WizardStore
	Assets   AssetStager
	Locks    SubmitLocker
	Users    UserDirectory
	Files    onboarding.FileStore
	Profiles onboarding.ProfileStore
	Events   EventPublisher
	Metrics  *metrics.OnboardingMetrics
	// NewName 上传文件名生成器，为空时使用 uuid
	NewName func() string
}

// OnboardingService 资料引导向导：按用户保存草稿，驱动步骤状态机，在最后一步执行提交
type OnboardingService struct {
	deps OnboardingDeps
}

func NewOnboardingService(deps OnboardingDeps) *OnboardingService {
	return &OnboardingService{deps: deps}
}

func (s *OnboardingService) load(ctx context.Context, userID string) (onboarding.Wizard, error) {
	w, ok, err := s.deps.Wizards.Load(ctx, userID)
	if err != nil {
		return onboarding.Wizard{}, fmt.Errorf("failed to load wizard: %w", err)
	}
	if !ok {
		return onboarding.New(), nil
	}
	return w, nil
}

func (s *OnboardingService) save(ctx context.Context, userID string, w onboarding.Wizard) error {
	if err := s.deps.Wizards.Save(ctx, userID, w); err != nil {
		return fmt.Errorf("failed to save wizard: %w", err)
	}
	return nil
}

// discard 删除草稿和暂存照片，失败只记录日志
func (s *OnboardingService) discard(ctx context.Context, userID string) {
	if err := s.deps.Wizards.Discard(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to discard wizard",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	if err := s.deps.Assets.DiscardAll(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to discard staged photos",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func newState(w onboarding.Wizard) *dto.OnboardingState {
	return &dto.OnboardingState{View: onboarding.View(w), Draft: w.Draft}
}

// Current 挂载向导。没有草稿时返回第一步的空草稿
func (s *OnboardingService) Current(ctx context.Context, userID string) (*dto.OnboardingState, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newState(w), nil
}

// Edit 修改当前步骤的字段
func (s *OnboardingService) Edit(ctx context.Context, userID string, edit onboarding.Edit) (*dto.OnboardingState, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := onboarding.Apply(w, edit)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, next); err != nil {
		return nil, err
	}
	return newState(next), nil
}

// Retreat 返回上一步，草稿保留
func (s *OnboardingService) Retreat(ctx context.Context, userID string) (*dto.OnboardingState, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	prev, err := onboarding.Retreat(w)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, prev); err != nil {
		return nil, err
	}
	return newState(prev), nil
}

// Advance 前进一步；在欢迎步骤上触发提交
func (s *OnboardingService) Advance(ctx context.Context, userID string) (*dto.OnboardingAdvanceResponse, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, outcome, err := onboarding.Advance(w)
	if err != nil {
		return nil, err
	}
	if outcome == onboarding.SubmitRequested {
		return s.submit(ctx, userID)
	}

	if err := s.save(ctx, userID, next); err != nil {
		return nil, err
	}
	return &dto.OnboardingAdvanceResponse{State: newState(next)}, nil
}

// submit 在提交锁内执行提交流程。失败时草稿保持不变，客户端可以重试
func (s *OnboardingService) submit(ctx context.Context, userID string) (*dto.OnboardingAdvanceResponse, error) {
	started := time.Now()

	release, ok, err := s.deps.Locks.Acquire(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	if !ok {
		s.deps.Metrics.RecordSubmission(ctx, metrics.ResultInProgress, started)
		return nil, pkgerrors.OnboardingSubmitInProgress
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Logger.Warn("Failed to release submit lock",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}()

	// 拿到锁之前草稿可能已被上一次提交处理掉，以锁内读到的为准
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w.Step != onboarding.LastStep {
		return &dto.OnboardingAdvanceResponse{State: newState(w)}, nil
	}

	submitter := &onboarding.Submitter{
		Auth:     userAuthenticator{users: s.deps.Users, userID: userID},
		Assets:   s.deps.Assets,
		Files:    meteredFileStore{files: s.deps.Files, metrics: s.deps.Metrics},
		Profiles: s.deps.Profiles,
		NewName:  s.deps.NewName,
	}

	res, err := submitter.Submit(ctx, w.Draft)
	if err != nil {
		result := submissionResult(err)
		s.deps.Metrics.RecordSubmission(ctx, result, started)
		logger.WithContext(ctx).Error("Profile submission failed",
			zap.String("user_id", userID),
			zap.String("result", result),
			zap.Int("photos", len(w.Draft.Photos)),
			zap.Error(err),
		)
		return nil, err
	}

	s.discard(ctx, userID)

	if res.Destination == onboarding.DestinationSignIn {
		s.deps.Metrics.RecordSubmission(ctx, metrics.ResultSignIn, started)
		logger.WithContext(ctx).Info("No authenticated user at submit, redirecting to sign in",
			zap.String("user_id", userID),
		)
		return &dto.OnboardingAdvanceResponse{Destination: onboarding.DestinationSignIn}, nil
	}

	profile := model.NewProfileFromRecord(*res.Record)

	if err := s.deps.Users.MarkActive(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to mark user active",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
	if err := s.deps.Events.PublishProfileCreated(ctx, profile); err != nil {
		logger.Logger.Warn("Failed to publish profile created event",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	s.deps.Metrics.RecordSubmission(ctx, metrics.ResultSuccess, started)
	logger.WithContext(ctx).Info("Profile created",
		zap.String("user_id", userID),
		zap.Int("photos", len(profile.PhotoURLs)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return &dto.OnboardingAdvanceResponse{
		Destination: onboarding.DestinationMain,
		Profile:     dto.NewProfileData(profile),
	}, nil
}

func submissionResult(err error) string {
	var uploadErr *onboarding.PhotoUploadError
	switch {
	case errors.As(err, &uploadErr):
		return metrics.ResultUploadFailed
	case errors.Is(err, pkgerrors.ProfileAlreadyExists):
		return metrics.ResultDuplicate
	case errors.Is(err, pkgerrors.OnboardingProfileSaveFailed), errors.Is(err, pkgerrors.ErrDatabaseConnectionNil):
		return metrics.ResultSaveFailed
	default:
		return metrics.ResultAuthFailed
	}
}

// AddPhoto 在照片步骤追加一张照片。已满时不会读取请求中的图片
func (s *OnboardingService) AddPhoto(ctx context.Context, userID string, src PhotoSource) (*dto.AddPhotoResponse, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	picker := stagingPicker{src: src, assets: s.deps.Assets, userID: userID}
	next, added, err := onboarding.AddPhoto(ctx, w, picker)
	if err != nil {
		if _, ok := pkgerrors.As(err); ok {
			s.deps.Metrics.RecordPhotoStaged(ctx, metrics.ResultPhotoRejected)
		}
		return nil, err
	}

	if added {
		if err := s.save(ctx, userID, next); err != nil {
			return nil, err
		}
		s.deps.Metrics.RecordPhotoStaged(ctx, metrics.ResultPhotoSuccess)
	}

	return &dto.AddPhotoResponse{Added: added, State: *newState(next)}, nil
}

// RemovePhoto 删除指定位置的照片，越界时草稿不变
func (s *OnboardingService) RemovePhoto(ctx context.Context, userID string, index int) (*dto.OnboardingState, error) {
	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := onboarding.RemovePhoto(w, index)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, next); err != nil {
		return nil, err
	}
	return newState(next), nil
}

// Abandon 放弃引导，删除草稿和暂存照片
func (s *OnboardingService) Abandon(ctx context.Context, userID string) error {
	s.discard(ctx, userID)
	return nil
}

// userAuthenticator 把 JWT 中的用户 ID 解析为当前用户；用户不存在视为未登录
type userAuthenticator struct {
	users  UserDirectory
	userID string
}

func (a userAuthenticator) CurrentUser(ctx context.Context) (*onboarding.User, error) {
	if a.userID == "" {
		return nil, nil
	}

	user, err := a.users.FindByPublicID(ctx, a.userID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrUserNotFound) || errors.Is(err, pkgerrors.InvalidUserID) {
			return nil, nil
		}
		return nil, err
	}
	return &onboarding.User{ID: user.PublicIDString(), Email: user.Email}, nil
}

// stagingPicker 读取请求中的图片并暂存，返回本地素材引用
type stagingPicker struct {
	src    PhotoSource
	assets AssetStager
	userID string
}

func (p stagingPicker) Pick(ctx context.Context, cfg onboarding.PickConfig) (onboarding.PickResult, error) {
	data, cancelled, err := p.src.Read(ctx, cfg)
	if err != nil {
		return onboarding.PickResult{}, err
	}
	if cancelled {
		return onboarding.PickResult{Cancelled: true}, nil
	}

	ref, err := p.assets.Stage(ctx, p.userID, data)
	if err != nil {
		return onboarding.PickResult{}, fmt.Errorf("failed to stage photo: %w", err)
	}
	return onboarding.PickResult{LocalReference: ref}, nil
}

// meteredFileStore 记录每张照片的上传结果
type meteredFileStore struct {
	files   onboarding.FileStore
	metrics *metrics.OnboardingMetrics
}

func (m meteredFileStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	url, err := m.files.Upload(ctx, path, data, contentType)
	result := metrics.ResultPhotoSuccess
	if err != nil {
		result = metrics.ResultPhotoFailed
	}
	m.metrics.RecordPhotoUpload(ctx, result)
	return url, err
}
