package errors

import stderrors "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 通用错误。
var (
	InvalidRequest  = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, please try again later"}
	InternalError   = Definition{Code: "INTERNAL_ERROR", Message: "Internal error"}
)

// 认证相关错误。
var (
	Unauthorized           = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID          = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	InvalidEmail           = Definition{Code: "INVALID_EMAIL", Message: "Please enter a valid email address"}
	PasswordTooShort       = Definition{Code: "PASSWORD_TOO_SHORT", Message: "Password should be at least 6 characters"}
	EmailAlreadyRegistered = Definition{Code: "EMAIL_ALREADY_REGISTERED", Message: "User already registered"}
	InvalidCredentials     = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid login credentials"}
	ErrUserNotFound        = Definition{Code: "USER_NOT_FOUND", Message: "User not found. Please sign in."}
)

// token 相关错误。
var (
	ErrTokenGeneratorNotInitialized = Definition{Code: "TOKEN_GENERATOR_NOT_INITIALIZED", Message: "Token generator not initialized"}
	ErrUnexpectedSigningMethod      = Definition{Code: "UNEXPECTED_SIGNING_METHOD", Message: "Unexpected signing method"}
	ErrInvalidToken                 = Definition{Code: "INVALID_TOKEN", Message: "Invalid token"}
	ErrInvalidTokenClaims           = Definition{Code: "INVALID_TOKEN_CLAIMS", Message: "Invalid token claims"}
	ErrInvalidTokenType             = Definition{Code: "INVALID_TOKEN_TYPE", Message: "Invalid token type"}
	ErrUserIDNotFound               = Definition{Code: "USER_ID_NOT_FOUND", Message: "User ID not found in token"}
)

// 引导流程错误。
var (
	OnboardingStepInvalid       = Definition{Code: "ONBOARDING_STEP_INVALID", Message: "Onboarding step invalid"}
	OnboardingStepIncomplete    = Definition{Code: "ONBOARDING_STEP_INCOMPLETE", Message: "Current step is not complete"}
	OnboardingAtFirstStep       = Definition{Code: "ONBOARDING_AT_FIRST_STEP", Message: "Already at the first step"}
	OnboardingFieldNotOnStep    = Definition{Code: "ONBOARDING_FIELD_NOT_ON_STEP", Message: "Field cannot be edited on the current step"}
	OnboardingOptionInvalid     = Definition{Code: "ONBOARDING_OPTION_INVALID", Message: "Selected option is not allowed"}
	OnboardingPhotoInvalid      = Definition{Code: "ONBOARDING_PHOTO_INVALID", Message: "Selected file is not an image"}
	OnboardingPhotoTooLarge     = Definition{Code: "ONBOARDING_PHOTO_TOO_LARGE", Message: "Selected image is too large"}
	OnboardingNotAuthenticated  = Definition{Code: "ONBOARDING_NOT_AUTHENTICATED", Message: "No authenticated user"}
	OnboardingPhotoUploadFailed = Definition{Code: "ONBOARDING_PHOTO_UPLOAD_FAILED", Message: "Failed to upload one of the photos, please try again"}
	OnboardingProfileSaveFailed = Definition{Code: "ONBOARDING_PROFILE_SAVE_FAILED", Message: "Failed to save profile, please try again"}
	OnboardingSubmitInProgress  = Definition{Code: "ONBOARDING_SUBMIT_IN_PROGRESS", Message: "Profile submission already in progress"}
)

// 资料模块错误。
var (
	ProfileNotFound      = Definition{Code: "PROFILE_NOT_FOUND", Message: "Profile not found"}
	ProfileAlreadyExists = Definition{Code: "PROFILE_ALREADY_EXISTS", Message: "Profile already exists"}
)

// 基础设施错误。
var (
	ErrDatabaseConnectionNil = Definition{Code: "DATABASE_CONNECTION_NIL", Message: "Database connection is not initialized"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidRequest.Code:              InvalidRequest,
	TooManyRequests.Code:             TooManyRequests,
	InternalError.Code:               InternalError,
	Unauthorized.Code:                Unauthorized,
	InvalidUserID.Code:               InvalidUserID,
	InvalidEmail.Code:                InvalidEmail,
	PasswordTooShort.Code:            PasswordTooShort,
	EmailAlreadyRegistered.Code:      EmailAlreadyRegistered,
	InvalidCredentials.Code:          InvalidCredentials,
	ErrUserNotFound.Code:             ErrUserNotFound,
	ErrInvalidToken.Code:             ErrInvalidToken,
	OnboardingStepInvalid.Code:       OnboardingStepInvalid,
	OnboardingStepIncomplete.Code:    OnboardingStepIncomplete,
	OnboardingAtFirstStep.Code:       OnboardingAtFirstStep,
	OnboardingFieldNotOnStep.Code:    OnboardingFieldNotOnStep,
	OnboardingOptionInvalid.Code:     OnboardingOptionInvalid,
	OnboardingPhotoInvalid.Code:      OnboardingPhotoInvalid,
	OnboardingPhotoTooLarge.Code:     OnboardingPhotoTooLarge,
	OnboardingNotAuthenticated.Code:  OnboardingNotAuthenticated,
	OnboardingPhotoUploadFailed.Code: OnboardingPhotoUploadFailed,
	OnboardingProfileSaveFailed.Code: OnboardingProfileSaveFailed,
	OnboardingSubmitInProgress.Code:  OnboardingSubmitInProgress,
	ProfileNotFound.Code:             ProfileNotFound,
	ProfileAlreadyExists.Code:        ProfileAlreadyExists,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// As 从错误链中取出 Definition，支持 fmt.Errorf("%w") 包装后的错误
func As(err error) (Definition, bool) {
	var def Definition
	if stderrors.As(err, &def) {
		return def, true
	}
	return Definition{}, false
}

// SkipMessageError 表示消息无需重试，消费者直接 ack
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return stderrors.As(err, &skip)
}
