package main

import (
	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/handlers"
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/internal/utils"
	"github.com/prismhq/prism/pkg/logger"
)

// appServices holds all initialized handlers needed by the application.
type appServices struct {
	cfg              *config.Config
	authHandler      *handlers.AuthHandler
	workspaceHandler *handlers.WorkspaceHandler
	teamHandler      *handlers.TeamMemberHandler
	meetingHandler   *handlers.MeetingHandler
	projectHandler   *handlers.ProjectHandler
	taskHandler      *handlers.TaskHandler
}

// bootstrap initializes all application dependencies: database, services, handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	emailService := services.NewEmailService(&cfg.SMTP)

	return &appServices{
		cfg:              cfg,
		authHandler:      handlers.NewAuthHandler(db, cfg),
		workspaceHandler: handlers.NewWorkspaceHandler(db, cfg),
		teamHandler:      handlers.NewTeamMemberHandler(db),
		meetingHandler:   handlers.NewMeetingHandler(db, emailService),
		projectHandler:   handlers.NewProjectHandler(db),
		taskHandler:      handlers.NewTaskHandler(db),
	}
}
