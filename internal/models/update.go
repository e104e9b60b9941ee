package models

import "time"

// Update is one immutable entry in a workspace's activity feed. Rows are only
// ever created or cascade-deleted with the workspace.
type Update struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Message     string     `gorm:"size:1023;not null" json:"message"`
	Created     time.Time  `gorm:"autoCreateTime" json:"created"`
}

func (Update) TableName() string { return "updates" }
