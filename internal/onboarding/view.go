package onboarding

// StepView 服务端下发给客户端渲染的单步视图。
// 按 Step 区分，每一步由各自的 builder 生成，不共用一个大 switch。
type StepView struct {
	Step        Step       `json:"step"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Fields      []Field    `json:"fields,omitempty"`
	Photos      *PhotoGrid `json:"photos,omitempty"`
	Action      string     `json:"action"`
	CanProceed  bool       `json:"can_proceed"`
	CanRetreat  bool       `json:"can_retreat"`
}

// FieldKind 字段控件类型
type FieldKind string

const (
	FieldText         FieldKind = "text"
	FieldSingleChoice FieldKind = "single_choice"
	FieldMultiChoice  FieldKind = "multi_choice"
)

// Field 单个输入字段
type Field struct {
	Key         string    `json:"key"`
	Kind        FieldKind `json:"kind"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Value       string    `json:"value,omitempty"`
	Options     []Option  `json:"options,omitempty"`
}

// Option 选项及其选中状态
type Option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// PhotoGrid 照片步骤的 6 个格子
type PhotoGrid struct {
	Slots  []PhotoSlot `json:"slots"`
	CanAdd bool        `json:"can_add"`
	Picker PickConfig  `json:"picker"`
}

// PhotoSlot 单个照片格子，Reference 为空时显示添加按钮
type PhotoSlot struct {
	Index     int    `json:"index"`
	Reference string `json:"reference,omitempty"`
	Label     string `json:"label,omitempty"`
}

const (
	actionContinue       = "Continue"
	actionStartExploring = "Start Exploring"
)

var viewBuilders = map[Step]func(Draft) StepView{
	StepName:     nameView,
	StepBirthday: birthdayView,
	StepGender:   genderView,
	StepLocation: locationView,
	StepStyle:    styleView,
	StepPhotos:   photosView,
	StepWelcome:  welcomeView,
}

// View 生成当前步骤的视图
func View(w Wizard) StepView {
	build, ok := viewBuilders[w.Step]
	if !ok {
		return StepView{Step: w.Step}
	}

	v := build(w.Draft)
	v.Step = w.Step
	v.Action = actionContinue
	if w.Step == LastStep {
		v.Action = actionStartExploring
	}
	v.CanProceed = w.CanProceed()
	v.CanRetreat = w.CanRetreat()
	return v
}

func nameView(d Draft) StepView {
	return StepView{
		Title: "What's your first name?",
		Fields: []Field{
			{Key: "name", Kind: FieldText, Placeholder: "Enter your first name", Value: d.Name},
		},
	}
}

func birthdayView(d Draft) StepView {
	return StepView{
		Title: "When's your birthday?",
		Fields: []Field{
			{Key: "birthday", Kind: FieldText, Placeholder: "MM/DD/YYYY", Value: d.Birthday},
		},
	}
}

func genderView(d Draft) StepView {
	return StepView{
		Title: "What's your gender?",
		Fields: []Field{
			{Key: "gender", Kind: FieldSingleChoice, Options: choices(GenderOptions, d.Gender)},
		},
	}
}

func locationView(d Draft) StepView {
	return StepView{
		Title: "Where do you usually ski?",
		Fields: []Field{
			{Key: "location", Kind: FieldText, Placeholder: "Enter your usual location", Value: d.Location},
			{Key: "years_skiing", Kind: FieldText, Placeholder: "Years of experience", Value: d.YearsSkiing},
		},
	}
}

func styleView(d Draft) StepView {
	terrain := make([]Option, 0, len(TerrainOptions))
	for _, t := range TerrainOptions {
		terrain = append(terrain, Option{Value: string(t), Selected: d.HasTerrain(t)})
	}

	return StepView{
		Title:       "What's your style?",
		Description: "Select your preferences:",
		Fields: []Field{
			{Key: "preferred_terrain", Kind: FieldMultiChoice, Label: "Preferred Terrain", Options: terrain},
			{Key: "skill_level", Kind: FieldSingleChoice, Label: "Skill Level", Options: choices(SkillLevels, d.SkillLevel)},
			{Key: "speed_preference", Kind: FieldSingleChoice, Label: "Speed Preference", Options: choices(SpeedOptions, d.SpeedPreference)},
		},
	}
}

func photosView(d Draft) StepView {
	slots := make([]PhotoSlot, MaxPhotos)
	for i := range slots {
		slots[i].Index = i
		if i < len(d.Photos) {
			slots[i].Reference = d.Photos[i]
			continue
		}
		if i == 0 {
			slots[i].Label = "Add main photo"
		} else {
			slots[i].Label = "Add photo"
		}
	}

	return StepView{
		Title:       "Add your photos",
		Description: "Add up to 6 of your best ski photos!",
		Photos: &PhotoGrid{
			Slots:  slots,
			CanAdd: len(d.Photos) < MaxPhotos,
			Picker: DefaultPickConfig,
		},
	}
}

func welcomeView(Draft) StepView {
	return StepView{
		Title:       "Welcome to SkiBuddy!",
		Description: "You're all set to find your perfect ski buddy. Start exploring matches now!",
	}
}

func choices[T ~string](options []T, selected T) []Option {
	out := make([]Option, 0, len(options))
	for _, o := range options {
		out = append(out, Option{Value: string(o), Selected: o == selected})
	}
	return out
}
