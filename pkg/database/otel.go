package database

import (
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	spanKey  = "otel:span"
	startKey = "otel:start_time"
)

// OTELPlugin GORM OpenTelemetry 插件，为每条语句创建 span 并记录耗时
type OTELPlugin struct {
	tracer   trace.Tracer
	queries  metric.Int64Counter
	duration metric.Float64Histogram
}

var _ gorm.Plugin = (*OTELPlugin)(nil)

// NewOTELPlugin 创建插件实例
func NewOTELPlugin(serviceName string) *OTELPlugin {
	if serviceName == "" {
		serviceName = "skibuddy"
	}
	meter := otel.Meter(serviceName + ".gorm")

	p := &OTELPlugin{tracer: otel.Tracer(serviceName + ".gorm")}
	p.queries, _ = meter.Int64Counter("db.queries.total",
		metric.WithDescription("Total number of database queries"),
		metric.WithUnit("{query}"),
	)
	p.duration, _ = meter.Float64Histogram("db.query.duration",
		metric.WithDescription("Database query duration"),
		metric.WithUnit("s"),
	)
	return p
}

func (p *OTELPlugin) Name() string {
	return "otel_plugin"
}

// Initialize 注册回调
func (p *OTELPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	errs := []error{
		cb.Create().Before("gorm:create").Register("otel:before_create", p.before),
		cb.Create().After("gorm:create").Register("otel:after_create", p.after("create")),
		cb.Query().Before("gorm:query").Register("otel:before_query", p.before),
		cb.Query().After("gorm:query").Register("otel:after_query", p.after("query")),
		cb.Update().Before("gorm:update").Register("otel:before_update", p.before),
		cb.Update().After("gorm:update").Register("otel:after_update", p.after("update")),
		cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before),
		cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after("delete")),
		cb.Row().Before("gorm:row").Register("otel:before_row", p.before),
		cb.Row().After("gorm:row").Register("otel:after_row", p.after("row")),
		cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before),
		cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after("raw")),
	}
	return errors.Join(errs...)
}

func (p *OTELPlugin) before(db *gorm.DB) {
	ctx, span := p.tracer.Start(db.Statement.Context, "gorm."+db.Statement.Table,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	db.Statement.Context = ctx
	db.InstanceSet(spanKey, span)
	db.InstanceSet(startKey, time.Now())
}

func (p *OTELPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		status := "success"
		if err := db.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		attrs := []attribute.KeyValue{
			semconv.DBOperation(operation),
			semconv.DBSQLTable(db.Statement.Table),
			attribute.String("db.status", status),
		}
		span.SetAttributes(attrs...)
		span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))

		ctx := db.Statement.Context
		if p.queries != nil {
			p.queries.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		if start, ok := db.InstanceGet(startKey); ok && p.duration != nil {
			if t, ok := start.(time.Time); ok {
				p.duration.Record(ctx, time.Since(t).Seconds(), metric.WithAttributes(attrs...))
			}
		}
	}
}
