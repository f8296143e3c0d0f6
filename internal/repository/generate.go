package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"SkiBuddy/internal/model"
	"SkiBuddy/pkg/errors"
	"SkiBuddy/storage/database"
)

// ========== User 相关查询接口 ==========

// UserQuerier 用户查询接口
type UserQuerier interface {
	// GetByPublicID 根据 PublicID 查询用户（API 中 userID 是 public_id）
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// GetByEmail 根据邮箱查询用户
	//
	// SELECT * FROM @@table WHERE email = @email LIMIT 1
	GetByEmail(email string) (*gen.T, error)

	// CountByStatus 统计各状态的用户数量
	//
	// SELECT status, COUNT(*) as count
	// FROM @@table
	// GROUP BY status
	CountByStatus() ([]gen.M, error)
}

// ========== Profile 相关查询接口 ==========

// ProfileQuerier 资料查询接口
type ProfileQuerier interface {
	// GetByID 根据用户 public id 查询资料
	//
	// SELECT * FROM @@table WHERE id = @id LIMIT 1
	GetByID(id string) (*gen.T, error)

	// ListBySkillLevel 按水平分页查询（用于后续的匹配功能）
	//
	// SELECT * FROM @@table
	// WHERE skill_level = @skillLevel
	// ORDER BY created_at DESC
	// LIMIT @limit OFFSET @offset
	ListBySkillLevel(skillLevel string, limit, offset int) ([]*gen.T, error)
}

func Generate(outPath string) error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	db := database.DB()
	if db == nil {
		return errors.ErrDatabaseConnectionNil
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		ModelPkgPath:      "SkiBuddy/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 使用现有 model，不反向生成
	g.ApplyBasic(
		&model.User{},
		&model.Profile{},
	)

	g.ApplyInterface(func(UserQuerier) {}, &model.User{})
	g.ApplyInterface(func(ProfileQuerier) {}, &model.Profile{})

	g.Execute()

	return nil
}

func RunGenerate(outPath string) {
	if err := Generate(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
