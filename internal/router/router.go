package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/route"

	"SkiBuddy/internal/handler"
	"SkiBuddy/internal/middleware"
)

// Register 注册全部路由，middlewares 放在全局中间件之后（链路追踪等）
func Register(h *server.Hertz, hd *handler.Handler, middlewares ...app.HandlerFunc) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middlewares...)
	h.Use(middleware.OpenTelemetryMiddleware())

	registerRoutes(&h.RouterGroup, hd)
}

func registerRoutes(r *route.RouterGroup, hd *handler.Handler) {
	// 全局限流在鉴权之前执行，按 IP 计数
	v1 := r.Group("/v1", middleware.GeneralRateLimitMiddleware())

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口按 IP 限流
	{
		auth.POST("/sign-up", hd.SignUp)
		auth.POST("/sign-in", hd.SignIn)
		auth.POST("/token/refresh", hd.RefreshToken)
	}

	// 用户相关路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware()) // 需要鉴权的路由组
	{
		users.GET("/me/status", hd.GetUserStatus)
	}

	profiles := v1.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("/me", hd.GetMyProfile)
	}

	// 资料引导向导，写操作按用户限流
	onboarding := v1.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware())
	{
		writeLimit := middleware.OnboardingRateLimitMiddleware()

		onboarding.GET("", hd.GetOnboarding)
		onboarding.DELETE("", hd.AbandonOnboarding)
		onboarding.PATCH("/draft", writeLimit, hd.EditOnboardingDraft)
		onboarding.POST("/advance", writeLimit, hd.AdvanceOnboarding)
		onboarding.POST("/retreat", hd.RetreatOnboarding)
		onboarding.POST("/photos", writeLimit, hd.AddOnboardingPhoto)
		onboarding.DELETE("/photos/:index", hd.RemoveOnboardingPhoto)
	}
}
