package models

import "time"

// Project is a unit of work under a workspace. A public project is visible to
// every workspace member; a private one only to its explicit members. Privacy
// is a one-way gate: a project can go private->public but never back.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WorkspaceID uint            `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace      `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"size:127;not null" json:"name"`
	IsPrivate   bool            `gorm:"default:false" json:"is_private"`
	Archived    bool            `gorm:"default:false" json:"archived"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// ProjectMember enrols a workspace member into a project. Only consulted when
// the project is private.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_member;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	MemberID  uint      `gorm:"uniqueIndex:idx_project_member;not null" json:"member_id"`
	Member    *User     `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
