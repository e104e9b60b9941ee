package models

import "time"

// Meeting is a scheduled event under a workspace.
type Meeting struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	WorkspaceID  uint                 `gorm:"index;not null" json:"workspace_id"`
	Workspace    *Workspace           `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"-"`
	Agenda       string               `gorm:"size:255;not null" json:"agenda"`
	Link         string               `gorm:"size:500" json:"link"`
	StartTime    time.Time            `json:"start_time"`
	DurationMins uint                 `gorm:"not null" json:"duration_mins"`
	Participants []MeetingParticipant `gorm:"foreignKey:MeetingID" json:"participants,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (Meeting) TableName() string { return "meetings" }

// MeetingParticipant enrols a workspace member into a meeting.
type MeetingParticipant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MeetingID     uint      `gorm:"uniqueIndex:idx_meeting_participant;not null" json:"meeting_id"`
	Meeting       *Meeting  `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"-"`
	ParticipantID uint      `gorm:"uniqueIndex:idx_meeting_participant;not null" json:"participant_id"`
	Participant   *User     `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"participant,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (MeetingParticipant) TableName() string { return "meeting_participants" }
