package app

import (
	"linguacert_backend/docs"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/middleware"
	"linguacert_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/track-visit", c.admin.TrackVisit)
		public.POST("/schedule", c.admin.CreateSchedule)

		auth := public.Group("/auth")
		{
			auth.POST("/send-verification-code", c.auth.SendVerificationCode)
			auth.POST("/confirm-code", c.auth.VerifyEmail)
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/verify-otp", c.auth.VerifyOTP)
			auth.POST("/refresh-token", c.auth.Refresh)
			auth.POST("/forgot-password", c.auth.ForgotPassword)
			auth.POST("/verify-reset-code", c.auth.VerifyResetCode)
			auth.POST("/reset-password-with-code", c.auth.ResetPassword)
		}
	}

	// 2. 考试路由: 游客可用, 登录用户的提交绑定账号
	exam := router.Group("/api/exam")
	exam.Use(middleware.TryAuthMiddleware(cfg))
	{
		exam.GET("/questions", c.exam.GetQuestions)
		exam.POST("/submit", c.exam.Submit)
		exam.GET("/latest-result", c.exam.LatestResult)
		exam.GET("/user-exams/:userId", c.exam.UserExams)
	}

	// 3. 需要登录的路由
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.POST("/auth/logout", c.auth.Logout)
		authorized.POST("/auth/reset-password", c.auth.ChangePassword)
		authorized.GET("/auth/me", c.auth.Me)
		authorized.GET("/users/:id", c.user.GetUser)
	}

	// 4. 管理后台
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", c.admin.Login)

		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.AdminMiddleware(cfg))
		{
			adminOnly.POST("/questions", c.question.Create)
			adminOnly.GET("/questions", c.question.List)
			adminOnly.GET("/questions/count", c.question.Count)
			adminOnly.PUT("/questions/:id", c.question.Update)
			adminOnly.DELETE("/questions/:id", c.question.Delete)

			adminOnly.GET("/visits", c.admin.ListVisits)
			adminOnly.GET("/users/count", c.admin.UserCount)
			adminOnly.GET("/results", c.admin.ListResults)
			adminOnly.GET("/schedules", c.admin.ListSchedules)
		}
	}
}
