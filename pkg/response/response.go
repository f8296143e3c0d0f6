package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"SkiBuddy/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// StatusOf 根据错误码映射 HTTP 状态码，错误链中没有 Definition 时返回 500
func StatusOf(err error) int {
	def, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case errors.TooManyRequests.Code:
		return http.StatusTooManyRequests // 429
	case errors.InvalidRequest.Code, errors.InvalidEmail.Code, errors.PasswordTooShort.Code,
		errors.OnboardingStepInvalid.Code, errors.OnboardingStepIncomplete.Code,
		errors.OnboardingAtFirstStep.Code, errors.OnboardingFieldNotOnStep.Code,
		errors.OnboardingOptionInvalid.Code, errors.OnboardingPhotoInvalid.Code:
		return http.StatusBadRequest // 400
	case errors.OnboardingPhotoTooLarge.Code:
		return http.StatusRequestEntityTooLarge // 413
	case errors.Unauthorized.Code, errors.InvalidCredentials.Code, errors.ErrInvalidToken.Code,
		errors.ErrInvalidTokenType.Code, errors.OnboardingNotAuthenticated.Code, errors.InvalidUserID.Code:
		return http.StatusUnauthorized // 401
	case errors.ErrUserNotFound.Code, errors.ProfileNotFound.Code:
		return http.StatusNotFound // 404
	case errors.EmailAlreadyRegistered.Code, errors.ProfileAlreadyExists.Code,
		errors.OnboardingSubmitInProgress.Code:
		return http.StatusConflict // 409
	case errors.OnboardingPhotoUploadFailed.Code, errors.OnboardingProfileSaveFailed.Code:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}

func detailOf(err error) (string, string) {
	if def, ok := errors.As(err); ok {
		return def.Code, def.Message
	}
	return errors.InternalError.Code, errors.InternalError.Message
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	ErrorWithDetails(ctx, c, err, nil)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	code, message := detailOf(err)
	c.JSON(StatusOf(err), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    errors.InvalidRequest.Code,
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
