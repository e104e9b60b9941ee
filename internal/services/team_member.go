package services

import (
	"errors"
	"fmt"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type TeamMemberService struct {
	db       *gorm.DB
	policy   *PolicyService
	activity *ActivityService
}

func NewTeamMemberService(db *gorm.DB) *TeamMemberService {
	return &TeamMemberService{
		db:       db,
		policy:   NewPolicyService(db),
		activity: NewActivityService(db),
	}
}

type AddTeamMemberRequest struct {
	MemberID uint   `json:"member_id" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin member"`
}

// List returns the workspace's members. Workspace members only.
func (s *TeamMemberService) List(userID, workspaceID uint) ([]models.TeamMember, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireMember(userID, workspace); err != nil {
		return nil, err
	}

	var members []models.TeamMember
	err = s.db.Preload("Member").
		Where("workspace_id = ?", workspace.ID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Add enrols a user into the workspace. Granting role=admin is reserved for
// the workspace owner; granting role=member requires an admin membership.
// A duplicate enrolment is rejected, by pre-check or by the store's unique
// index when two requests race.
func (s *TeamMemberService) Add(userID, workspaceID uint, req *AddTeamMemberRequest) (*models.TeamMember, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}

	if role == models.RoleAdmin {
		if err := s.policy.RequireOwner(userID, workspace); err != nil {
			return nil, err
		}
	} else if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationFailed("member id does not resolve to a user")
		}
		return nil, err
	}

	if s.policy.IsWorkspaceMember(user.ID, workspace.ID) {
		return nil, response.NewValidationFailed("user is already a member of this workspace")
	}

	member := models.TeamMember{
		WorkspaceID: workspace.ID,
		MemberID:    user.ID,
		Role:        role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewValidationFailed("user is already a member of this workspace")
		}
		return nil, err
	}

	s.activity.Record(workspace.ID, fmt.Sprintf("%s added to %s", user.FullName(), workspace.Name))

	member.Member = &user
	return &member, nil
}

// Get returns one membership row. Workspace members only.
func (s *TeamMemberService) Get(userID, workspaceID, id uint) (*models.TeamMember, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireMember(userID, workspace); err != nil {
		return nil, err
	}

	var member models.TeamMember
	err = s.db.Preload("Member").
		Where("workspace_id = ?", workspace.ID).
		First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("team member not found")
		}
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership row. Workspace owner only.
func (s *TeamMemberService) Remove(userID, workspaceID, id uint) error {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	if err := s.policy.RequireOwner(userID, workspace); err != nil {
		return err
	}

	var member models.TeamMember
	err = s.db.Preload("Member").
		Where("workspace_id = ?", workspace.ID).
		First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("team member not found")
		}
		return err
	}

	if member.Member != nil {
		s.activity.Record(workspace.ID, fmt.Sprintf("%s removed from %s", member.Member.FullName(), workspace.Name))
	}
	return s.db.Delete(&member).Error
}
