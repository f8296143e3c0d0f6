package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"SkiBuddy/internal/onboarding"
	pkgerrors "SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/response"
)

// GetOnboarding 挂载向导，返回当前步骤视图和草稿
// GET /v1/onboarding
func (h *Handler) GetOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	state, err := h.onboarding.Current(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, state)
}

// EditOnboardingDraft 编辑当前步骤的字段
// PATCH /v1/onboarding/draft
func (h *Handler) EditOnboardingDraft(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	var edit onboarding.Edit
	if err := c.BindJSON(&edit); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	state, err := h.onboarding.Edit(ctx, userID, edit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, state)
}

// AdvanceOnboarding 前进一步，在最后一步提交资料
// POST /v1/onboarding/advance
func (h *Handler) AdvanceOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	res, err := h.onboarding.Advance(ctx, userID)
	if err != nil {
		var uploadErr *onboarding.PhotoUploadError
		switch {
		case errors.As(err, &uploadErr):
			response.ErrorWithDetails(ctx, c, err, map[string]interface{}{
				"retryable":   true,
				"photo_index": uploadErr.Index,
			})
		case errors.Is(err, pkgerrors.OnboardingProfileSaveFailed):
			response.ErrorWithDetails(ctx, c, err, map[string]interface{}{
				"retryable": true,
			})
		default:
			response.Error(ctx, c, err)
		}
		return
	}
	response.Success(ctx, c, res)
}

// RetreatOnboarding 返回上一步
// POST /v1/onboarding/retreat
func (h *Handler) RetreatOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	state, err := h.onboarding.Retreat(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, state)
}

// AddOnboardingPhoto 添加一张照片，multipart 字段 photo；不带文件表示用户取消了选择
// POST /v1/onboarding/photos
func (h *Handler) AddOnboardingPhoto(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	src := &multipartPhotoSource{c: c, maxBytes: h.photoMaxBytes}
	res, err := h.onboarding.AddPhoto(ctx, userID, src)
	if err != nil {
		if _, ok := pkgerrors.As(err); !ok {
			logger.WithContext(ctx).Error("Failed to add onboarding photo",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, res)
}

// RemoveOnboardingPhoto 删除指定位置的照片
// DELETE /v1/onboarding/photos/:index
func (h *Handler) RemoveOnboardingPhoto(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(ctx, c, pkgerrors.InvalidRequest)
		return
	}

	state, err := h.onboarding.RemovePhoto(ctx, userID, index)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, state)
}

// AbandonOnboarding 放弃引导，删除草稿
// DELETE /v1/onboarding
func (h *Handler) AbandonOnboarding(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	if err := h.onboarding.Abandon(ctx, userID); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.NoContent(ctx, c)
}
