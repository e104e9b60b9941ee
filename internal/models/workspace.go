package models

import "time"

// Workspace types.
const (
	WorkspaceTypePersonal   = "personal"
	WorkspaceTypeITCompany  = "it_company"
	WorkspaceTypeNGO        = "ngo"
	WorkspaceTypeGovernment = "government_office"
	WorkspaceTypeOthers     = "others"
)

// Workspace is the top-level tenant. The owner is granted an admin
// membership row at creation time.
type Workspace struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:127;not null" json:"name"`
	OwnerID   uint      `gorm:"not null" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Type      string    `gorm:"size:31;default:it_company" json:"type"`
	Image     string    `gorm:"size:500" json:"image"` // media reference, set via image upload
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Workspace) TableName() string { return "workspaces" }
