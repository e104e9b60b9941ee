package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/internal/utils"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	utils.SetJWTSecret("test-secret-for-service-testing")
}

// newTestDB opens a private in-memory database migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.TeamMember{},
		&models.Update{},
		&models.Meeting{},
		&models.MeetingParticipant{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskMember{},
		&models.Subtask{},
		&models.TaskDependency{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedUser persists an active account named after the handle.
func seedUser(t *testing.T, db *gorm.DB, handle string) *models.User {
	t.Helper()

	user := models.User{
		Email:     handle + "@example.com",
		Username:  handle,
		Password:  "unused-hash",
		FirstName: handle,
		LastName:  "Tester",
		IsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", handle, err)
	}
	return &user
}

// seedWorkspace creates a workspace through the service so the creator gets
// the usual admin membership and feed entry.
func seedWorkspace(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Workspace {
	t.Helper()

	workspace, err := NewWorkspaceService(db).Create(&CreateWorkspaceRequest{Name: name}, owner.ID)
	if err != nil {
		t.Fatalf("failed to seed workspace %s: %v", name, err)
	}
	return workspace
}

// seedMember enrols a user into a workspace directly with the given role.
func seedMember(t *testing.T, db *gorm.DB, workspace *models.Workspace, user *models.User, role string) *models.TeamMember {
	t.Helper()

	member := models.TeamMember{
		WorkspaceID: workspace.ID,
		MemberID:    user.ID,
		Role:        role,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member %d: %v", user.ID, err)
	}
	return &member
}

func disabledMailer() *EmailService {
	return NewEmailService(&config.SMTPConfig{Enabled: false})
}

// appErrorStatus returns the HTTP status of an AppError, or 0 for any other
// error (including nil).
func appErrorStatus(err error) int {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return 0
}
