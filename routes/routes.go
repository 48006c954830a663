package routes

import (
	"editorial-management-api/controllers"
	"editorial-management-api/middleware"
	"editorial-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB) {
	notifier := services.NewMailNotifier(db)
	workflow := services.NewAbstractWorkflowService(db, notifier)
	queries := services.NewAbstractQueryService(db)
	abstracts := controllers.NewAbstractController(workflow, queries)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Editorial Management API is running",
			})
		})

		// Abstract review workflow (all routes require authentication)
		ab := v1.Group("/abstracts")
		ab.Use(middleware.AuthMiddleware())
		{
			// Authors
			ab.POST("/submit-abstract", middleware.RequireRole(middleware.RoleAuthor), abstracts.SubmitAbstract)
			ab.POST("/:abstractId/full-paper", middleware.RequireRole(middleware.RoleAuthor), abstracts.UploadFullPaper)
			ab.GET("/author/accepted", middleware.RequireRole(middleware.RoleAuthor), abstracts.GetAcceptedAbstracts)

			// Editors (both stages share the review endpoint; the stage is
			// inferred from the abstract's current status)
			ab.POST("/:abstractId/review", middleware.RequireRole(middleware.RoleEditor), abstracts.ReviewAbstract)
			ab.GET("/editor/assigned", middleware.RequireRole(middleware.RoleEditor), abstracts.GetAssignedAbstracts)

			// Admins
			ab.GET("/conference/:conferenceId", middleware.RequireRole(middleware.RoleAdmin), abstracts.GetConferenceAbstracts)
			ab.POST("/:abstractId/assign-editor", middleware.RequireRole(middleware.RoleAdmin), abstracts.AssignEditor)
			ab.POST("/:abstractId/assign-conference-editor", middleware.RequireRole(middleware.RoleAdmin), abstracts.AssignConferenceEditor)
			ab.POST("/:abstractId/admin-decision", middleware.RequireRole(middleware.RoleAdmin), abstracts.AdminDecision)
		}
	}
}
