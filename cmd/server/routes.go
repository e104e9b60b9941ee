package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "prism"})
	})

	// Uploaded workspace images
	r.Static("/media", svc.cfg.Media.Dir)

	api := r.Group("/api")
	{
		// Account routes (public, rate limited)
		user := api.Group("/user", authLimiter.Middleware())
		{
			user.POST("", svc.authHandler.Register)
			user.POST("/login", svc.authHandler.Login)
			user.POST("/token-refresh", svc.authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/user/me", svc.authHandler.Me)

			// Workspaces
			workspace := protected.Group("/workspace")
			{
				workspace.GET("", svc.workspaceHandler.List)
				workspace.POST("", svc.workspaceHandler.Create)
				workspace.GET("/:id", svc.workspaceHandler.Get)
				workspace.PUT("/:id", svc.workspaceHandler.Update)
				workspace.DELETE("/:id", svc.workspaceHandler.Delete)
				workspace.GET("/:id/role", svc.workspaceHandler.Role)
				workspace.GET("/:id/updates", svc.workspaceHandler.ListUpdates)
				workspace.POST("/:id/image", svc.workspaceHandler.UploadImage)

				// Team members
				workspace.GET("/:id/team", svc.teamHandler.List)
				workspace.POST("/:id/team", svc.teamHandler.Add)
				workspace.GET("/:id/team/:memberID", svc.teamHandler.Get)
				workspace.DELETE("/:id/team/:memberID", svc.teamHandler.Remove)

				// Meetings
				workspace.GET("/:id/meetings", svc.meetingHandler.List)
				workspace.POST("/:id/meetings", svc.meetingHandler.Create)
				workspace.GET("/:id/meetings/:meetingID", svc.meetingHandler.Get)
				workspace.PUT("/:id/meetings/:meetingID", svc.meetingHandler.Update)
				workspace.DELETE("/:id/meetings/:meetingID", svc.meetingHandler.Delete)
				workspace.GET("/:id/meetings/:meetingID/participants", svc.meetingHandler.ListParticipants)
				workspace.POST("/:id/meetings/:meetingID/participants", svc.meetingHandler.AddParticipant)
				workspace.DELETE("/:id/meetings/:meetingID/participants/:participantID", svc.meetingHandler.RemoveParticipant)

				// Projects
				workspace.GET("/:id/projects", svc.projectHandler.List)
				workspace.POST("/:id/projects", svc.projectHandler.Create)
				workspace.GET("/:id/projects/:projectID", svc.projectHandler.Get)
				workspace.PUT("/:id/projects/:projectID", svc.projectHandler.Update)
				workspace.DELETE("/:id/projects/:projectID", svc.projectHandler.Delete)
				workspace.GET("/:id/projects/:projectID/members", svc.projectHandler.ListMembers)
				workspace.POST("/:id/projects/:projectID/members", svc.projectHandler.AddMember)
				workspace.DELETE("/:id/projects/:projectID/members/:memberID", svc.projectHandler.RemoveMember)

				// Tasks
				workspace.GET("/:id/projects/:projectID/tasks", svc.taskHandler.List)
				workspace.POST("/:id/projects/:projectID/tasks", svc.taskHandler.Create)
				workspace.GET("/:id/projects/:projectID/tasks/:taskID", svc.taskHandler.Get)
				workspace.PUT("/:id/projects/:projectID/tasks/:taskID", svc.taskHandler.Update)
				workspace.DELETE("/:id/projects/:projectID/tasks/:taskID", svc.taskHandler.Delete)

				workspace.GET("/:id/projects/:projectID/tasks/:taskID/subtasks", svc.taskHandler.ListSubtasks)
				workspace.POST("/:id/projects/:projectID/tasks/:taskID/subtasks", svc.taskHandler.AddSubtask)
				workspace.PUT("/:id/projects/:projectID/tasks/:taskID/subtasks/:subtaskID", svc.taskHandler.UpdateSubtask)
				workspace.DELETE("/:id/projects/:projectID/tasks/:taskID/subtasks/:subtaskID", svc.taskHandler.RemoveSubtask)

				workspace.POST("/:id/projects/:projectID/tasks/:taskID/members", svc.taskHandler.AddMember)
				workspace.DELETE("/:id/projects/:projectID/tasks/:taskID/members/:memberID", svc.taskHandler.RemoveMember)

				workspace.POST("/:id/projects/:projectID/tasks/:taskID/dependencies", svc.taskHandler.AddDependency)
				workspace.DELETE("/:id/projects/:projectID/tasks/:taskID/dependencies/:dependencyID", svc.taskHandler.RemoveDependency)
			}
		}
	}
}
