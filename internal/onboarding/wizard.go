package onboarding

import (
	"fmt"
	"slices"

	pkgerrors "SkiBuddy/pkg/errors"
)

// Step 引导步骤，1..7 线性推进
type Step int

const (
	StepName Step = iota + 1
	StepBirthday
	StepGender
	StepLocation
	StepStyle
	StepPhotos
	StepWelcome
)

const (
	FirstStep = StepName
	LastStep  = StepWelcome
)

// Valid 步骤是否在 1..7 之间
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Wizard 引导向导的完整状态：当前步骤 + 草稿。
// 所有转换函数都接收并返回一个新的 Wizard，不修改入参。
type Wizard struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}

// New 创建挂载时的空向导
func New() Wizard {
	return Wizard{Step: FirstStep}
}

// Outcome 表示 Advance 的结果
type Outcome int

const (
	// Advanced 已进入下一步
	Advanced Outcome = iota + 1
	// SubmitRequested 在最后一步触发了提交，由调用方执行提交流程
	SubmitRequested
)

// StepComplete 判断某一步的校验条件是否满足
func StepComplete(step Step, d Draft) bool {
	switch step {
	case StepName:
		return d.Name != ""
	case StepBirthday:
		// 格式在提交时才处理
		return d.Birthday != ""
	case StepGender:
		return d.Gender != ""
	case StepLocation:
		// years_skiing 任意非空文本都算满足，包括非数字
		return d.Location != "" && d.YearsSkiing != ""
	case StepStyle:
		return len(d.PreferredTerrain) > 0 && d.SkillLevel != "" && d.SpeedPreference != ""
	case StepPhotos:
		return len(d.Photos) > 0
	case StepWelcome:
		return true
	default:
		return false
	}
}

// CanProceed 当前步骤是否允许继续
func (w Wizard) CanProceed() bool {
	return StepComplete(w.Step, w.Draft)
}

// CanRetreat 当前步骤是否允许返回
func (w Wizard) CanRetreat() bool {
	return w.Step > FirstStep
}

// Advance 在校验通过时进入下一步；在最后一步时不再前进，而是返回 SubmitRequested。
func Advance(w Wizard) (Wizard, Outcome, error) {
	if !w.Step.Valid() {
		return w, 0, pkgerrors.OnboardingStepInvalid
	}
	if !w.CanProceed() {
		return w, 0, pkgerrors.OnboardingStepIncomplete
	}
	if w.Step == LastStep {
		return w, SubmitRequested, nil
	}

	next := Wizard{Step: w.Step + 1, Draft: w.Draft.clone()}
	return next, Advanced, nil
}

// Retreat 返回上一步，不做任何校验
func Retreat(w Wizard) (Wizard, error) {
	if !w.Step.Valid() {
		return w, pkgerrors.OnboardingStepInvalid
	}
	if !w.CanRetreat() {
		return w, pkgerrors.OnboardingAtFirstStep
	}
	return Wizard{Step: w.Step - 1, Draft: w.Draft.clone()}, nil
}

// Edit 一次步骤内的编辑，nil 字段表示不修改。
// PreferredTerrain 为非 nil 时整体替换（可为空切片表示清空），ToggleTerrain 切换单个选项。
type Edit struct {
	Name             *string             `json:"name,omitempty"`
	Birthday         *string             `json:"birthday,omitempty"`
	Gender           *Gender             `json:"gender,omitempty"`
	Location         *string             `json:"location,omitempty"`
	YearsSkiing      *string             `json:"years_skiing,omitempty"`
	PreferredTerrain []TerrainPreference `json:"preferred_terrain,omitempty"`
	ToggleTerrain    *TerrainPreference  `json:"toggle_terrain,omitempty"`
	SkillLevel       *SkillLevel         `json:"skill_level,omitempty"`
	SpeedPreference  *SpeedPreference    `json:"speed_preference,omitempty"`
}

// fieldSteps 每个字段所属的步骤
func (e Edit) fieldSteps() map[string]Step {
	touched := make(map[string]Step)
	if e.Name != nil {
		touched["name"] = StepName
	}
	if e.Birthday != nil {
		touched["birthday"] = StepBirthday
	}
	if e.Gender != nil {
		touched["gender"] = StepGender
	}
	if e.Location != nil {
		touched["location"] = StepLocation
	}
	if e.YearsSkiing != nil {
		touched["years_skiing"] = StepLocation
	}
	if e.PreferredTerrain != nil {
		touched["preferred_terrain"] = StepStyle
	}
	if e.ToggleTerrain != nil {
		touched["toggle_terrain"] = StepStyle
	}
	if e.SkillLevel != nil {
		touched["skill_level"] = StepStyle
	}
	if e.SpeedPreference != nil {
		touched["speed_preference"] = StepStyle
	}
	return touched
}

// Apply 把编辑应用到草稿上。只允许修改当前步骤的字段，枚举值必须在固定选项内。
// 任意一处校验失败时整个编辑都不生效。
func Apply(w Wizard, e Edit) (Wizard, error) {
	for field, step := range e.fieldSteps() {
		if step != w.Step {
			return w, fmt.Errorf("%s: %w", field, pkgerrors.OnboardingFieldNotOnStep)
		}
	}

	if e.Gender != nil && !e.Gender.Valid() {
		return w, fmt.Errorf("gender %q: %w", *e.Gender, pkgerrors.OnboardingOptionInvalid)
	}
	if e.SkillLevel != nil && !e.SkillLevel.Valid() {
		return w, fmt.Errorf("skill_level %q: %w", *e.SkillLevel, pkgerrors.OnboardingOptionInvalid)
	}
	if e.SpeedPreference != nil && !e.SpeedPreference.Valid() {
		return w, fmt.Errorf("speed_preference %q: %w", *e.SpeedPreference, pkgerrors.OnboardingOptionInvalid)
	}
	if e.ToggleTerrain != nil && !e.ToggleTerrain.Valid() {
		return w, fmt.Errorf("terrain %q: %w", *e.ToggleTerrain, pkgerrors.OnboardingOptionInvalid)
	}
	for _, t := range e.PreferredTerrain {
		if !t.Valid() {
			return w, fmt.Errorf("terrain %q: %w", t, pkgerrors.OnboardingOptionInvalid)
		}
	}

	d := w.Draft.clone()
	if e.Name != nil {
		d.Name = *e.Name
	}
	if e.Birthday != nil {
		d.Birthday = *e.Birthday
	}
	if e.Gender != nil {
		d.Gender = *e.Gender
	}
	if e.Location != nil {
		d.Location = *e.Location
	}
	if e.YearsSkiing != nil {
		d.YearsSkiing = *e.YearsSkiing
	}
	if e.PreferredTerrain != nil {
		d.PreferredTerrain = uniqueTerrain(e.PreferredTerrain)
	}
	if e.ToggleTerrain != nil {
		d.PreferredTerrain = toggleTerrain(d.PreferredTerrain, *e.ToggleTerrain)
	}
	if e.SkillLevel != nil {
		d.SkillLevel = *e.SkillLevel
	}
	if e.SpeedPreference != nil {
		d.SpeedPreference = *e.SpeedPreference
	}

	return Wizard{Step: w.Step, Draft: d}, nil
}

func uniqueTerrain(in []TerrainPreference) []TerrainPreference {
	out := make([]TerrainPreference, 0, len(in))
	for _, t := range in {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func toggleTerrain(current []TerrainPreference, t TerrainPreference) []TerrainPreference {
	if i := slices.Index(current, t); i >= 0 {
		return slices.Delete(current, i, i+1)
	}
	return append(current, t)
}
