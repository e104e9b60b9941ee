package services

import (
	"errors"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

// PolicyService is the authorization policy consulted by every endpoint
// before it reads or mutates workspace-scoped state. Predicates read only
// membership rows and have no side effects.
//
// Owner-only operations (workspace update/delete, membership removal,
// admin-role grants) compare against Workspace.OwnerID directly and are NOT
// folded into these predicates: the owner holds an admin membership row from
// workspace creation, but the two concepts stay distinct per operation.
type PolicyService struct {
	db *gorm.DB
}

func NewPolicyService(db *gorm.DB) *PolicyService {
	return &PolicyService{db: db}
}

// IsWorkspaceMember reports whether a membership row of any role exists for
// the pair.
func (s *PolicyService) IsWorkspaceMember(userID, workspaceID uint) bool {
	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("workspace_id = ? AND member_id = ?", workspaceID, userID).
		Count(&count)
	return count > 0
}

// IsWorkspaceAdmin reports whether a membership row with role=admin exists
// for the pair.
func (s *PolicyService) IsWorkspaceAdmin(userID, workspaceID uint) bool {
	var count int64
	s.db.Model(&models.TeamMember{}).
		Where("workspace_id = ? AND member_id = ? AND role = ?", workspaceID, userID, models.RoleAdmin).
		Count(&count)
	return count > 0
}

// IsProjectMember reports whether an explicit project membership row exists.
func (s *PolicyService) IsProjectMember(userID, projectID uint) bool {
	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND member_id = ?", projectID, userID).
		Count(&count)
	return count > 0
}

// CanAccessProject is true for any caller when the project is public, and
// only for explicit project members when it is private.
func (s *PolicyService) CanAccessProject(userID uint, project *models.Project) bool {
	if !project.IsPrivate {
		return true
	}
	return s.IsProjectMember(userID, project.ID)
}

// --- Target loaders ---
//
// Loaders realize the "not-found before forbidden" ordering: the target is
// fetched first so a missing parent yields 404 and a present-but-forbidden
// one yields 403.

// GetWorkspace loads a workspace or returns NotFound.
func (s *PolicyService) GetWorkspace(id uint) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := s.db.First(&workspace, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("workspace not found")
		}
		return nil, err
	}
	return &workspace, nil
}

// GetProject loads a project scoped to a workspace or returns NotFound.
func (s *PolicyService) GetProject(workspaceID, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("workspace_id = ?", workspaceID).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// --- Predicate guards ---

// RequireMember returns Forbidden unless the caller holds a membership row.
func (s *PolicyService) RequireMember(userID uint, workspace *models.Workspace) error {
	if !s.IsWorkspaceMember(userID, workspace.ID) {
		return response.NewForbidden("access restricted to workspace members only")
	}
	return nil
}

// RequireAdmin returns Forbidden unless the caller holds an admin membership row.
func (s *PolicyService) RequireAdmin(userID uint, workspace *models.Workspace) error {
	if !s.IsWorkspaceAdmin(userID, workspace.ID) {
		return response.NewForbidden("access restricted to workspace admins only")
	}
	return nil
}

// RequireOwner returns Forbidden unless the caller owns the workspace.
func (s *PolicyService) RequireOwner(userID uint, workspace *models.Workspace) error {
	if workspace.OwnerID != userID {
		return response.NewForbidden("access restricted to workspace owner only")
	}
	return nil
}

// RequireProjectAccess returns Forbidden unless the caller can access the
// project per its visibility.
func (s *PolicyService) RequireProjectAccess(userID uint, project *models.Project) error {
	if !s.CanAccessProject(userID, project) {
		return response.NewForbidden("access restricted to project members only")
	}
	return nil
}

// RequireTaskAccess combines the workspace membership and project visibility
// predicates applied to every task-level operation.
func (s *PolicyService) RequireTaskAccess(userID uint, workspace *models.Workspace, project *models.Project) error {
	if err := s.RequireMember(userID, workspace); err != nil {
		return err
	}
	return s.RequireProjectAccess(userID, project)
}
