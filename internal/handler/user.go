package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SkiBuddy/internal/middleware"
	"SkiBuddy/pkg/errors"
	"SkiBuddy/pkg/response"
)

// currentUserID JWT 中间件写入的 public_id，缺失时直接返回 401
func currentUserID(ctx context.Context, c *app.RequestContext) (string, bool) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok || userID == "" {
		response.Error(ctx, c, errors.Unauthorized)
		return "", false
	}
	return userID, true
}

// GetUserStatus 入口路由：返回应进入引导还是首页
// GET /v1/users/me/status
func (h *Handler) GetUserStatus(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	status, err := h.users.GetUserStatus(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, status)
}
