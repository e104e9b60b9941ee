package services

import (
	"errors"
	"fmt"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/logger"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db       *gorm.DB
	policy   *PolicyService
	activity *ActivityService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{
		db:       db,
		policy:   NewPolicyService(db),
		activity: NewActivityService(db),
	}
}

type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required,max=127"`
	IsPrivate bool   `json:"is_private"`
	Members   []uint `json:"members"`
}

type UpdateProjectRequest struct {
	Name      string `json:"name" binding:"omitempty,max=127"`
	IsPrivate *bool  `json:"is_private"`
	Archived  *bool  `json:"archived"`
}

type AddProjectMemberRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}

// List returns the projects visible to the caller: all public ones plus the
// private ones they are enrolled in. Workspace members only.
func (s *ProjectService) List(userID, workspaceID uint) ([]models.Project, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireMember(userID, workspace); err != nil {
		return nil, err
	}

	memberOf := s.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("member_id = ?", userID)

	var projects []models.Project
	err = s.db.Where("workspace_id = ?", workspace.ID).
		Where("is_private = ? OR id IN (?)", false, memberOf).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Create adds a project. Admins only. For a private project the listed member
// ids are enrolled after being validated as workspace members (invalid ids
// are logged and skipped), and the creator is auto-enrolled unless listed.
func (s *ProjectService) Create(userID, workspaceID uint, req *CreateProjectRequest) (*models.Project, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return nil, err
	}

	project := models.Project{
		WorkspaceID: workspace.ID,
		Name:        req.Name,
		IsPrivate:   req.IsPrivate,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	if project.IsPrivate {
		s.enrolMembers(&project, req.Members, userID)
	}

	s.activity.Record(workspace.ID, fmt.Sprintf("Project created: %s", project.Name))

	if err := s.db.Preload("Members.Member").First(&project, project.ID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// enrolMembers persists a membership row per listed id that resolves to a
// workspace member, skipping invalid ids, then auto-enrols the creator if
// they were not listed.
func (s *ProjectService) enrolMembers(project *models.Project, memberIDs []uint, creatorID uint) {
	creatorListed := false
	for _, id := range memberIDs {
		if id == creatorID {
			creatorListed = true
		}
		if !s.policy.IsWorkspaceMember(id, project.WorkspaceID) {
			logger.Warn().Uint("member_id", id).Uint("project_id", project.ID).
				Msg("skipping project member: not a workspace member")
			continue
		}
		member := models.ProjectMember{ProjectID: project.ID, MemberID: id}
		if err := s.db.Create(&member).Error; err != nil {
			logger.Warn().Err(err).Uint("member_id", id).Uint("project_id", project.ID).
				Msg("skipping project member")
		}
	}

	if !creatorListed {
		member := models.ProjectMember{ProjectID: project.ID, MemberID: creatorID}
		if err := s.db.Create(&member).Error; err != nil {
			logger.Warn().Err(err).Uint("member_id", creatorID).Uint("project_id", project.ID).
				Msg("failed to auto-enrol project creator")
		}
	}
}

// Get returns one project with its members, respecting visibility.
func (s *ProjectService) Get(userID, workspaceID, id uint) (*models.Project, error) {
	project, err := s.policy.GetProject(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireProjectAccess(userID, project); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Members.Member").First(project, project.ID).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Update changes project fields, respecting visibility. Once public, a
// project can never be made private again; that request is rejected with the
// project left unchanged.
func (s *ProjectService) Update(userID, workspaceID, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.policy.GetProject(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireProjectAccess(userID, project); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.IsPrivate != nil {
		if *req.IsPrivate && !project.IsPrivate {
			return nil, response.NewValidationFailed("a public project cannot be made private")
		}
		updates["is_private"] = *req.IsPrivate
	}
	if req.Archived != nil {
		updates["archived"] = *req.Archived
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return project, nil
}

// Delete removes the project and, via cascade, its tasks. Respects visibility.
func (s *ProjectService) Delete(userID, workspaceID, id uint) error {
	project, err := s.policy.GetProject(workspaceID, id)
	if err != nil {
		return err
	}
	if err := s.policy.RequireProjectAccess(userID, project); err != nil {
		return err
	}

	if err := s.db.Delete(project).Error; err != nil {
		return err
	}
	s.activity.Record(project.WorkspaceID, fmt.Sprintf("Project deleted: %s", project.Name))
	return nil
}

// requireMemberManagement guards the project-member operations: a public
// project is managed by workspace admins, a private one by its own members.
func (s *ProjectService) requireMemberManagement(userID uint, workspace *models.Workspace, project *models.Project) error {
	if project.IsPrivate {
		if !s.policy.IsProjectMember(userID, project.ID) {
			return response.NewForbidden("access restricted to project members only")
		}
		return nil
	}
	return s.policy.RequireAdmin(userID, workspace)
}

// ListMembers returns the project's membership rows.
func (s *ProjectService) ListMembers(userID, workspaceID, projectID uint) ([]models.ProjectMember, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	project, err := s.policy.GetProject(workspace.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMemberManagement(userID, workspace, project); err != nil {
		return nil, err
	}

	var members []models.ProjectMember
	err = s.db.Preload("Member").
		Where("project_id = ?", project.ID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember enrols a workspace member into the project.
func (s *ProjectService) AddMember(userID, workspaceID, projectID uint, req *AddProjectMemberRequest) (*models.ProjectMember, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	project, err := s.policy.GetProject(workspace.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMemberManagement(userID, workspace, project); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationFailed("member id does not resolve to a user")
		}
		return nil, err
	}
	if !s.policy.IsWorkspaceMember(user.ID, workspace.ID) {
		return nil, response.NewValidationFailed("project members must be workspace members")
	}

	member := models.ProjectMember{ProjectID: project.ID, MemberID: user.ID}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewValidationFailed("user is already a member of this project")
		}
		return nil, err
	}

	member.Member = &user
	return &member, nil
}

// RemoveMember deletes one project membership row.
func (s *ProjectService) RemoveMember(userID, workspaceID, projectID, id uint) error {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	project, err := s.policy.GetProject(workspace.ID, projectID)
	if err != nil {
		return err
	}
	if err := s.requireMemberManagement(userID, workspace, project); err != nil {
		return err
	}

	var member models.ProjectMember
	err = s.db.Where("project_id = ?", project.ID).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project member not found")
		}
		return err
	}
	return s.db.Delete(&member).Error
}
