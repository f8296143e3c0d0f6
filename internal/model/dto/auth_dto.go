package dto

// ========== Auth 相关 DTO ==========

// 登录/注册后客户端应进入的页面
const (
	NextStepOnboarding = "onboarding"
	NextStepHome       = "home"
)

// SignUpRequest 邮箱注册请求
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest 邮箱登录请求
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int              `json:"expires_in"`
	NextStep     string           `json:"next_step"`
	User         AuthUserSnapshot `json:"user"`
}

// AuthUserSnapshot 授权时的用户快照
type AuthUserSnapshot struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	IsNewUser bool   `json:"is_new_user"`
}

// RefreshTokenRequest 刷新 token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse 刷新 token 响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
