package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingHook 为每条 Redis 命令创建 span 并记录耗时
type TracingHook struct {
	tracer   trace.Tracer
	attrs    []attribute.KeyValue
	commands metric.Int64Counter
	duration metric.Float64Histogram
}

var _ redis.Hook = (*TracingHook)(nil)

// NewTracingHook 创建追踪 Hook，指标创建失败时只保留 trace
func NewTracingHook(serviceName string, db int) *TracingHook {
	meter := otel.Meter(serviceName + ".redis")
	h := &TracingHook{
		tracer: otel.Tracer(serviceName + ".redis"),
		attrs: []attribute.KeyValue{
			semconv.DBSystemRedis,
			semconv.DBRedisDBIndex(db),
		},
	}
	h.commands, _ = meter.Int64Counter("redis.commands.total",
		metric.WithDescription("Total number of Redis commands"),
		metric.WithUnit("{command}"),
	)
	h.duration, _ = meter.Float64Histogram("redis.command.duration",
		metric.WithDescription("Redis command duration"),
		metric.WithUnit("s"),
	)
	return h
}

func (h *TracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *TracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, span := h.tracer.Start(ctx, cmd.Name(),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(h.attrs...),
			trace.WithAttributes(semconv.DBOperation(cmd.Name())),
		)
		defer span.End()

		if keys := extractKeys(cmd.Args()); len(keys) > 0 {
			span.SetAttributes(attribute.StringSlice("redis.keys", keys))
		}

		start := time.Now()
		err := next(ctx, cmd)
		status := commandStatus(err)
		if status == "error" {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}

		h.record(ctx, cmd.Name(), status, time.Since(start))
		return err
	}
}

func (h *TracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, span := h.tracer.Start(ctx, "redis.pipeline",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(h.attrs...),
			trace.WithAttributes(attribute.Int("redis.pipeline.count", len(cmds))),
		)
		defer span.End()

		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			span.SetStatus(codes.Error, err.Error())
		}
		h.record(ctx, "pipeline", commandStatus(err), time.Since(start))
		return err
	}
}

func (h *TracingHook) record(ctx context.Context, command, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("redis.command", command),
		attribute.String("redis.status", status),
	)
	if h.commands != nil {
		h.commands.Add(ctx, 1, attrs)
	}
	if h.duration != nil {
		h.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

func commandStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, redis.Nil):
		return "not_found"
	default:
		return "error"
	}
}

// extractKeys 只记录键名，不记录值；令牌相关的键只保留前缀
func extractKeys(args []interface{}) []string {
	if len(args) < 2 {
		return nil
	}
	key, ok := args[1].(string)
	if !ok {
		return nil
	}
	if strings.Contains(key, "token") {
		if i := strings.LastIndex(key, ":"); i > 0 {
			key = key[:i] + ":***"
		}
	}
	return []string{key}
}
