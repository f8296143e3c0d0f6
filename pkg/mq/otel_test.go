package mq

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceContextRoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	msg := amqp.Publishing{}
	pubCtx, pubSpan := StartPublishSpan(context.Background(), "skibuddy.events", "profile.created", &msg)
	pubSpan.End()

	if HeaderCarrier(msg.Headers).Get("traceparent") == "" {
		t.Fatal("traceparent header not injected")
	}

	_, span := StartConsumeSpan(context.Background(), "profile.created", amqp.Delivery{Headers: msg.Headers})
	defer span.End()

	want := trace.SpanContextFromContext(pubCtx).TraceID()
	if got := span.SpanContext().TraceID(); got != want {
		t.Fatalf("trace id = %s, want %s", got, want)
	}
}
