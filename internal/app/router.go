package app

import (
	"skillsphere_backend/internal/config"
	"skillsphere_backend/internal/middleware"
	"skillsphere_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Most routes address users by explicit ID; a valid token still gets its
	// claims attached for handlers that care.
	api := router.Group("/api")
	api.Use(middleware.TryAuthMiddleware(cfg))
	{
		api.GET("/health", c.health.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", c.auth.Signup)
			auth.POST("/login", c.auth.Login)
			auth.POST("/logout", c.auth.Logout)
			auth.GET("/check", middleware.AuthMiddleware(cfg), c.auth.Check)
		}

		user := api.Group("/user")
		{
			user.POST("/onboard", c.user.Onboard)
			user.GET("/:userId", c.user.Get)
			user.PATCH("/:userId", c.user.Update)
			user.GET("/:userId/skills", c.user.Skills)
			user.GET("/:userId/enrolled", c.course.Enrolled)
			user.GET("/:userId/schedules", c.schedule.List)
			user.GET("/:userId/chat-history", c.chat.History)
		}

		quiz := api.Group("/quiz")
		{
			quiz.POST("/generate", c.quiz.Generate)
			quiz.POST("/submit", c.quiz.Submit)
			quiz.GET("/history", c.quiz.History)
		}

		courses := api.Group("/courses")
		{
			courses.POST("/recommend", c.course.Recommend)
			courses.GET("/recommendations/:userId", c.course.RecommendForUser)
			courses.GET("/recommendations/:userId/:domain", c.course.RecommendForUser)
			courses.POST("/enroll", c.course.Enroll)
			courses.PATCH("/:courseId/progress", c.course.UpdateProgress)
		}

		schedule := api.Group("/schedule")
		{
			schedule.POST("", c.schedule.Create)
			schedule.POST("/generate", c.schedule.Generate)
			schedule.GET("/:userId", c.schedule.List)
			schedule.PATCH("/:scheduleId", c.schedule.Update)
			schedule.POST("/:itemId/complete", c.schedule.Complete)
		}

		api.POST("/chat", c.chat.Send)

		api.GET("/mentor/recommendations/:userId", c.mentor.Recommendations)
	}
}
