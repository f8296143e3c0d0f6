package logger

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseZapLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"Warn":    zapcore.WarnLevel,
		"ERROR":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseZapLevel(in); got != want {
			t.Errorf("parseZapLevel(%q) = %v, want %v", in, got, want)
		}
		if toHlogLevel(want) == hlog.LevelTrace {
			t.Errorf("unexpected trace level for %v", want)
		}
	}
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Logger
	Logger = zap.New(core)
	defer func() { Logger = prev }()

	WithContext(context.Background()).Info("no span")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	WithContext(ctx).Info("with span")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if len(entries[0].Context) != 0 {
		t.Fatalf("no-span entry has fields %v", entries[0].Context)
	}
	fields := entries[1].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("fields = %v", fields)
	}
}
