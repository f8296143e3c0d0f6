package metrics

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 提交结果标签
const (
	ResultSuccess       = "success"
	ResultSignIn        = "sign_in"
	ResultUploadFailed  = "upload_failed"
	ResultSaveFailed    = "save_failed"
	ResultDuplicate     = "duplicate"
	ResultInProgress    = "in_progress"
	ResultAuthFailed    = "auth_failed"
	ResultPhotoSuccess  = "success"
	ResultPhotoFailed   = "failed"
	ResultPhotoRejected = "rejected"
)

// OnboardingMetrics 引导流程相关指标
type OnboardingMetrics struct {
	SubmissionsTotal   metric.Int64Counter
	SubmissionDuration metric.Float64Histogram
	PhotoUploadsTotal  metric.Int64Counter
	PhotosStagedTotal  metric.Int64Counter
}

var (
	onboarding     *OnboardingMetrics
	onboardingOnce sync.Once
)

// Onboarding 返回全局的引导指标。
// 指标从全局 MeterProvider 创建，在 otel 初始化前记录的数据会被丢弃。
func Onboarding() *OnboardingMetrics {
	onboardingOnce.Do(func() {
		m, err := NewOnboardingMetrics(otel.Meter("skibuddy.onboarding"))
		if err != nil {
			m = &OnboardingMetrics{}
		}
		onboarding = m
	})
	return onboarding
}

// NewOnboardingMetrics 基于给定 meter 创建指标
func NewOnboardingMetrics(meter metric.Meter) (*OnboardingMetrics, error) {
	var err error
	m := &OnboardingMetrics{}

	m.SubmissionsTotal, err = meter.Int64Counter(
		"onboarding_submissions_total",
		metric.WithDescription("Total number of onboarding submissions by result"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.SubmissionDuration, err = meter.Float64Histogram(
		"onboarding_submission_duration_seconds",
		metric.WithDescription("Time spent in the onboarding submission pipeline"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	m.PhotoUploadsTotal, err = meter.Int64Counter(
		"onboarding_photo_uploads_total",
		metric.WithDescription("Total number of profile photo uploads by result"),
		metric.WithUnit("{photo}"),
	)
	if err != nil {
		return nil, err
	}

	m.PhotosStagedTotal, err = meter.Int64Counter(
		"onboarding_photos_staged_total",
		metric.WithDescription("Total number of photos picked and staged during onboarding"),
		metric.WithUnit("{photo}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordSubmission 记录一次提交及其耗时
func (m *OnboardingMetrics) RecordSubmission(ctx context.Context, result string, started time.Time) {
	if m == nil || m.SubmissionsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("result", result))
	m.SubmissionsTotal.Add(ctx, 1, attrs)
	m.SubmissionDuration.Record(ctx, time.Since(started).Seconds(), attrs)
}

// RecordPhotoUpload 记录一张照片上传到对象存储的结果
func (m *OnboardingMetrics) RecordPhotoUpload(ctx context.Context, result string) {
	if m == nil || m.PhotoUploadsTotal == nil {
		return
	}
	m.PhotoUploadsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordPhotoStaged 记录一次选图结果
func (m *OnboardingMetrics) RecordPhotoStaged(ctx context.Context, result string) {
	if m == nil || m.PhotosStagedTotal == nil {
		return
	}
	m.PhotosStagedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
