package onboarding

import (
	"context"
	"slices"

	pkgerrors "SkiBuddy/pkg/errors"
)

// PickConfig 调用系统相册时的选择配置
type PickConfig struct {
	MediaTypes    string  `json:"media_types"`
	AllowsEditing bool    `json:"allows_editing"`
	Aspect        [2]int  `json:"aspect"`
	Quality       float64 `json:"quality"`
}

// DefaultPickConfig 仅图片、允许裁剪、1:1、质量 0.7
var DefaultPickConfig = PickConfig{
	MediaTypes:    "images",
	AllowsEditing: true,
	Aspect:        [2]int{1, 1},
	Quality:       0.7,
}

// PickResult 选择结果。用户取消时 Cancelled 为 true
type PickResult struct {
	Cancelled      bool
	LocalReference string
}

// AssetPicker 设备素材选择器
type AssetPicker interface {
	Pick(ctx context.Context, cfg PickConfig) (PickResult, error)
}

// AddPhoto 在照片步骤调用选择器追加一张照片。
// 已满 6 张时直接返回，不会调用选择器；用户取消时草稿不变。
// 第二个返回值表示是否真正添加了照片。
func AddPhoto(ctx context.Context, w Wizard, picker AssetPicker) (Wizard, bool, error) {
	if w.Step != StepPhotos {
		return w, false, pkgerrors.OnboardingFieldNotOnStep
	}
	if len(w.Draft.Photos) >= MaxPhotos {
		return w, false, nil
	}

	res, err := picker.Pick(ctx, DefaultPickConfig)
	if err != nil {
		return w, false, err
	}
	if res.Cancelled || res.LocalReference == "" {
		return w, false, nil
	}

	d := w.Draft.clone()
	d.Photos = append(d.Photos, res.LocalReference)
	return Wizard{Step: w.Step, Draft: d}, true, nil
}

// RemovePhoto 删除指定位置的照片，越界时为空操作
func RemovePhoto(w Wizard, index int) (Wizard, error) {
	if w.Step != StepPhotos {
		return w, pkgerrors.OnboardingFieldNotOnStep
	}
	if index < 0 || index >= len(w.Draft.Photos) {
		return w, nil
	}

	d := w.Draft.clone()
	d.Photos = slices.Delete(d.Photos, index, index+1)
	return Wizard{Step: w.Step, Draft: d}, nil
}
