package onboarding

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "SkiBuddy/pkg/errors"
)

// 提交后客户端应跳转的目的地
const (
	DestinationSignIn = "sign_in"
	DestinationMain   = "main"
)

// PhotoContentType 上传照片统一使用的内容类型
const PhotoContentType = "image/jpeg"

// User 提交时解析出的当前用户
type User struct {
	ID    string
	Email string
}

// Authenticator 获取当前登录用户，没有登录用户时返回 nil, nil
type Authenticator interface {
	CurrentUser(ctx context.Context) (*User, error)
}

// AssetSource 根据本地素材引用读取原始字节
type AssetSource interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

// FileStore 对象存储，Upload 返回可公开访问的地址
type FileStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// ProfileStore 结构化存储
type ProfileStore interface {
	InsertProfile(ctx context.Context, record ProfileRecord) error
}

// ProfileRecord 写入资料表的一条记录
type ProfileRecord struct {
	ID                 string              `json:"id"`
	Email              string              `json:"email"`
	Name               string              `json:"name"`
	Birthday           string              `json:"birthday"`
	Gender             Gender              `json:"gender"`
	Location           string              `json:"location"`
	YearsSkiing        *int                `json:"years_skiing"`
	PreferredTerrain   []TerrainPreference `json:"preferred_terrain"`
	SkillLevel         SkillLevel          `json:"skill_level"`
	SpeedPreference    SpeedPreference     `json:"speed_preference"`
	MainPhotoReference *string             `json:"main_photo_reference"`
	PhotoReferences    []string            `json:"photo_references"`
}

// Result 提交结果。Destination 为 sign_in 时 Record 为空
type Result struct {
	Destination string
	Record      *ProfileRecord
}

// PhotoUploadError 某张照片上传失败，Index 为该照片在草稿中的位置
type PhotoUploadError struct {
	Index int
	Err   error
}

func (e *PhotoUploadError) Error() string {
	return fmt.Sprintf("upload photo %d: %v", e.Index, e.Err)
}

func (e *PhotoUploadError) Unwrap() []error {
	return []error{pkgerrors.OnboardingPhotoUploadFailed, e.Err}
}

// Submitter 最后一步的提交流程：鉴权 -> 生日转换 -> 逐张上传 -> 组装记录 -> 写入
type Submitter struct {
	Auth     Authenticator
	Assets   AssetSource
	Files    FileStore
	Profiles ProfileStore
	// NewName 生成上传文件名（不含扩展名），为空时使用 uuid
	NewName func() string
}

func (s *Submitter) newName() string {
	if s.NewName != nil {
		return s.NewName()
	}
	return uuid.NewString()
}

// Submit 执行完整的提交流程。任何一步失败都会终止，不会写入部分资料。
// 没有登录用户时返回 Destination=sign_in 且不返回错误。
func (s *Submitter) Submit(ctx context.Context, d Draft) (*Result, error) {
	user, err := s.Auth.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	if user == nil {
		return &Result{Destination: DestinationSignIn}, nil
	}

	birthday := ConvertBirthday(d.Birthday)

	refs, err := s.UploadPhotos(ctx, user.ID, d.Photos)
	if err != nil {
		return nil, err
	}

	record := BuildRecord(*user, d, birthday, refs)
	if err := s.Profiles.InsertProfile(ctx, record); err != nil {
		if _, ok := pkgerrors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", pkgerrors.OnboardingProfileSaveFailed, err)
	}

	return &Result{Destination: DestinationMain, Record: &record}, nil
}

// UploadPhotos 按顺序逐张上传，路径为 {userID}/{name}.jpg。
// 第一次失败即返回，已上传的文件不做清理。
func (s *Submitter) UploadPhotos(ctx context.Context, userID string, photos []string) ([]string, error) {
	refs := make([]string, 0, len(photos))
	for i, ref := range photos {
		data, err := s.Assets.Open(ctx, ref)
		if err != nil {
			return nil, &PhotoUploadError{Index: i, Err: err}
		}

		path := fmt.Sprintf("%s/%s.jpg", userID, s.newName())
		url, err := s.Files.Upload(ctx, path, data, PhotoContentType)
		if err != nil {
			return nil, &PhotoUploadError{Index: i, Err: err}
		}
		refs = append(refs, url)
	}
	return refs, nil
}

// BuildRecord 组装资料记录。滑雪年限无法解析时为 nil，没有照片时主图为 nil。
func BuildRecord(user User, d Draft, birthday string, photoRefs []string) ProfileRecord {
	var main *string
	if len(photoRefs) > 0 {
		first := photoRefs[0]
		main = &first
	}

	terrain := d.PreferredTerrain
	if terrain == nil {
		terrain = []TerrainPreference{}
	}
	refs := photoRefs
	if refs == nil {
		refs = []string{}
	}

	return ProfileRecord{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               d.Name,
		Birthday:           birthday,
		Gender:             d.Gender,
		Location:           d.Location,
		YearsSkiing:        ParseYearsSkiing(d.YearsSkiing),
		PreferredTerrain:   terrain,
		SkillLevel:         d.SkillLevel,
		SpeedPreference:    d.SpeedPreference,
		MainPhotoReference: main,
		PhotoReferences:    refs,
	}
}
