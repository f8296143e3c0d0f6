package dto

import "SkiBuddy/internal/onboarding"

// ========== Onboarding 相关 DTO ==========

// OnboardingState 向导当前状态：步骤视图 + 草稿
type OnboardingState struct {
	View  onboarding.StepView `json:"view"`
	Draft onboarding.Draft    `json:"draft"`
}

// OnboardingAdvanceResponse 前进或提交的结果。
// Destination 非空表示向导已结束，客户端按其跳转；State 仅在仍处于向导中时返回。
type OnboardingAdvanceResponse struct {
	State       *OnboardingState `json:"state,omitempty"`
	Destination string           `json:"destination,omitempty"`
	Profile     *ProfileData     `json:"profile,omitempty"`
}

// AddPhotoResponse 添加照片结果，Added 为 false 表示用户取消或已满
type AddPhotoResponse struct {
	Added bool            `json:"added"`
	State OnboardingState `json:"state"`
}
