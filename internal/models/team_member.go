package models

import "time"

// Team member roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// TeamMember binds a user to a workspace with a role. The composite unique
// index is the authoritative duplicate guard; the pre-check in the service
// only produces a friendlier error.
type TeamMember struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"uniqueIndex:idx_workspace_member;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"workspace,omitempty"`
	MemberID    uint       `gorm:"uniqueIndex:idx_workspace_member;not null" json:"member_id"`
	Member      *User      `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	Role        string     `gorm:"size:31;default:member" json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (TeamMember) TableName() string { return "team_members" }
