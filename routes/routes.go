package routes

import (
	"openrole-api/controllers"
	"openrole-api/middleware"
	"openrole-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "OpenRole API is running",
				})
			})

			// Candidate profiles: anonymous viewers are allowed, the
			// visibility policy decides what they see
			public.GET("/profiles/:user_id", middleware.OptionalAuthMiddleware(), controllers.GetProfile)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Applications
			applications := protected.Group("/applications")
			{
				applications.GET("/:id", controllers.GetApplication)
				applications.GET("/:id/history", controllers.GetApplicationHistory)

				// Candidate-only actions
				applications.POST("", middleware.RequireRole(models.RoleCandidate), controllers.SubmitApplication)
				applications.GET("", middleware.RequireRole(models.RoleCandidate), controllers.GetApplications)
				applications.POST("/:id/withdraw", middleware.RequireRole(models.RoleCandidate), controllers.WithdrawApplication)

				// Employer/admin actions
				applications.PUT("/:id/status", middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), controllers.UpdateApplicationStatus)
				applications.POST("/:id/feedback", middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), controllers.AddApplicationFeedback)
				applications.POST("/bulk", middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), controllers.BulkUpdateApplications)
			}

			// Job-scoped listing (ownership re-checked in the service)
			protected.GET("/jobs/:job_id/applications",
				middleware.RequireRole(models.RoleEmployer, models.RoleAdmin), controllers.GetJobApplications)

			// Employer dashboard
			employer := protected.Group("/employer")
			employer.Use(middleware.RequireRole(models.RoleEmployer))
			{
				employer.GET("/applications", controllers.GetEmployerApplications)
				employer.GET("/pipeline", controllers.GetPipelineView)
			}

			// Candidate dashboard
			protected.GET("/candidate/stats",
				middleware.RequireRole(models.RoleCandidate), controllers.GetCandidateStats)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
