package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SkiBuddy/internal/model/dto"
	"SkiBuddy/pkg/response"
)

// SignUp 邮箱注册
// POST /v1/auth/sign-up
func (h *Handler) SignUp(ctx context.Context, c *app.RequestContext) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	res, err := h.auth.SignUp(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, res)
}

// SignIn 邮箱登录
// POST /v1/auth/sign-in
func (h *Handler) SignIn(ctx context.Context, c *app.RequestContext) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	res, err := h.auth.SignIn(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, res)
}

// RefreshToken 刷新访问令牌
// POST /v1/auth/token/refresh
func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	res, err := h.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, res)
}
