package services

import (
	"errors"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	db       *gorm.DB
	policy   *PolicyService
	activity *ActivityService
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{
		db:       db,
		policy:   NewPolicyService(db),
		activity: NewActivityService(db),
	}
}

type CreateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=127"`
	Type string `json:"type" binding:"omitempty,oneof=personal it_company ngo government_office others"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"omitempty,max=127"`
	Type string `json:"type" binding:"omitempty,oneof=personal it_company ngo government_office others"`
}

// List returns the workspaces where the caller holds a membership row.
func (s *WorkspaceService) List(userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	memberOf := s.db.Model(&models.TeamMember{}).
		Select("workspace_id").
		Where("member_id = ?", userID)
	err := s.db.Preload("Owner").
		Where("id IN (?)", memberOf).
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Create persists the workspace, its "<name> Created" feed entry and an admin
// membership for the creator in a single transaction: all three or none.
func (s *WorkspaceService) Create(req *CreateWorkspaceRequest, ownerID uint) (*models.Workspace, error) {
	workspace := models.Workspace{
		Name:    req.Name,
		OwnerID: ownerID,
		Type:    req.Type,
	}
	if workspace.Type == "" {
		workspace.Type = models.WorkspaceTypeITCompany
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		if err := s.activity.RecordIn(tx, workspace.ID, workspace.Name+" Created"); err != nil {
			return err
		}
		owner := models.TeamMember{
			WorkspaceID: workspace.ID,
			MemberID:    ownerID,
			Role:        models.RoleAdmin,
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewValidationFailed("a workspace with this name already exists")
		}
		return nil, err
	}

	if err := s.db.Preload("Owner").First(&workspace, workspace.ID).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Get returns a workspace, owner inlined, to a member.
func (s *WorkspaceService) Get(userID, id uint) (*models.Workspace, error) {
	var workspace models.Workspace
	err := s.db.Preload("Owner").First(&workspace, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("workspace not found")
		}
		return nil, err
	}
	if err := s.policy.RequireMember(userID, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Update changes name and/or type. Owner only.
func (s *WorkspaceService) Update(userID, id uint, req *UpdateWorkspaceRequest) (*models.Workspace, error) {
	workspace, err := s.policy.GetWorkspace(id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireOwner(userID, workspace); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Type != "" {
		updates["type"] = req.Type
	}

	if len(updates) > 0 {
		if err := s.db.Model(workspace).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, response.NewValidationFailed("a workspace with this name already exists")
			}
			return nil, err
		}
	}
	return workspace, nil
}

// Delete removes the workspace; members, updates, meetings and projects go
// with it via cascade. Owner only.
func (s *WorkspaceService) Delete(userID, id uint) error {
	workspace, err := s.policy.GetWorkspace(id)
	if err != nil {
		return err
	}
	if err := s.policy.RequireOwner(userID, workspace); err != nil {
		return err
	}
	return s.db.Delete(&models.Workspace{}, id).Error
}

// Role returns the caller's role in the workspace, from their membership row.
func (s *WorkspaceService) Role(userID, id uint) (string, error) {
	workspace, err := s.policy.GetWorkspace(id)
	if err != nil {
		return "", err
	}

	var member models.TeamMember
	err = s.db.Where("workspace_id = ? AND member_id = ?", workspace.ID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", response.NewForbidden("access restricted to workspace members only")
		}
		return "", err
	}
	return member.Role, nil
}

// GetOwned returns a workspace after verifying the caller owns it. Used by
// operations that must authorize before performing side effects of their own
// (e.g. storing an uploaded file).
func (s *WorkspaceService) GetOwned(userID, id uint) (*models.Workspace, error) {
	workspace, err := s.policy.GetWorkspace(id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireOwner(userID, workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// SetImage stores a media reference on the workspace. Owner only.
func (s *WorkspaceService) SetImage(userID, id uint, reference string) (*models.Workspace, error) {
	workspace, err := s.policy.GetWorkspace(id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireOwner(userID, workspace); err != nil {
		return nil, err
	}
	if reference == "" {
		return nil, response.NewValidationFailed("image reference is required")
	}

	if err := s.db.Model(workspace).Update("image", reference).Error; err != nil {
		return nil, err
	}
	return workspace, nil
}
