package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	appconfig "SkiBuddy/config"
	"SkiBuddy/internal/handler"
	"SkiBuddy/internal/middleware"
	"SkiBuddy/internal/router"
	"SkiBuddy/pkg/logger"
	"SkiBuddy/pkg/otel"
	"SkiBuddy/pkg/snowflake"
	"SkiBuddy/pkg/token"
	"SkiBuddy/storage"
)

// multipart 表单除照片外的其余字段预留空间
const bodyOverhead = 1 << 20

func main() {
	// 日志部分
	logger.Init()
	defer logger.Sync()

	cfg := appconfig.Cfg
	if err := appconfig.Validate(); err != nil {
		logger.Logger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	opts := []config.Option{
		server.WithHostPorts(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)),
		server.WithMaxRequestBodySize(int(cfg.PhotoMaxBytes) + bodyOverhead),
	}
	var extra []app.HandlerFunc

	if cfg.OTelEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:  cfg.ServiceName,
			Environment:  cfg.Environment,
			OTLPEndpoint: cfg.OTelEndpoint,
			SampleRatio:  cfg.OTelSampleRatio,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry, telemetry disabled", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
				}
			}()

			tracerOpt, tracerMw := middleware.NewServerTracerConfig()
			opts = append(opts, tracerOpt)
			extra = append(extra, tracerMw)
		}
	}

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(cfg.SnowflakeMachineID, cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token package", zap.Error(err))
	} // token 在中间件前初始化，middleware 依赖 token

	// 初始化中间件
	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", cfg.ServiceName),
		zap.String("port", cfg.ServerPort),
		zap.String("environment", cfg.Environment),
	)

	h := server.Default(opts...)
	router.Register(h, handler.Default(), extra...)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
