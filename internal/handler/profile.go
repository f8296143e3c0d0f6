package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SkiBuddy/pkg/response"
)

// GetMyProfile 资料页
// GET /v1/profiles/me
func (h *Handler) GetMyProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetMine(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, profile)
}
