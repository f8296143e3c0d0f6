package dto

// ========== User 相关 DTO ==========

// UserStatusData 入口路由使用的用户状态
type UserStatusData struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	HasProfile bool   `json:"has_profile"`
	NextStep   string `json:"next_step"`
}
