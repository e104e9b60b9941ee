package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/logger"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type MeetingService struct {
	db       *gorm.DB
	policy   *PolicyService
	activity *ActivityService
	email    *EmailService
}

func NewMeetingService(db *gorm.DB, email *EmailService) *MeetingService {
	return &MeetingService{
		db:       db,
		policy:   NewPolicyService(db),
		activity: NewActivityService(db),
		email:    email,
	}
}

type CreateMeetingRequest struct {
	Agenda       string    `json:"agenda" binding:"required,max=255"`
	Link         string    `json:"link" binding:"omitempty,max=500"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	DurationMins uint      `json:"duration_mins" binding:"required,gt=0"`
	Participants []uint    `json:"participants"`
}

type UpdateMeetingRequest struct {
	Agenda       string     `json:"agenda" binding:"omitempty,max=255"`
	Link         string     `json:"link" binding:"omitempty,max=500"`
	StartTime    *time.Time `json:"start_time"`
	DurationMins *uint      `json:"duration_mins" binding:"omitempty,gt=0"`
}

type AddParticipantRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
}

// List returns the workspace's meetings with participants. Members only.
func (s *MeetingService) List(userID, workspaceID uint) ([]models.Meeting, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireMember(userID, workspace); err != nil {
		return nil, err
	}

	var meetings []models.Meeting
	err = s.db.Preload("Participants.Participant").
		Where("workspace_id = ?", workspace.ID).
		Order("start_time").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// Create schedules a meeting. Admins only. Each proposed participant id must
// resolve to a user who is a workspace member; ids that fail either check are
// skipped with a warning, not rejected. Accepted participants receive one
// invitation e-mail; delivery failure does not affect the response.
func (s *MeetingService) Create(userID, workspaceID uint, req *CreateMeetingRequest) (*models.Meeting, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return nil, err
	}

	meeting := models.Meeting{
		WorkspaceID:  workspace.ID,
		Agenda:       req.Agenda,
		Link:         req.Link,
		StartTime:    req.StartTime,
		DurationMins: req.DurationMins,
	}
	if err := s.db.Create(&meeting).Error; err != nil {
		return nil, err
	}

	recipients := s.enrolParticipants(&meeting, req.Participants)

	s.activity.Record(workspace.ID, fmt.Sprintf("Meeting scheduled: %s", meeting.Agenda))

	var inviter models.User
	if err := s.db.First(&inviter, userID).Error; err == nil {
		// Best-effort delivery; the creation already succeeded.
		_ = s.email.SendMeetingInvite(recipients, &meeting, &inviter)
	}

	if err := s.db.Preload("Participants.Participant").First(&meeting, meeting.ID).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// enrolParticipants validates each proposed id (user exists, user is a
// workspace member), persists rows for those that pass and returns their
// e-mail addresses. Invalid ids are logged and skipped.
func (s *MeetingService) enrolParticipants(meeting *models.Meeting, participantIDs []uint) []string {
	var recipients []string
	for _, id := range participantIDs {
		var user models.User
		if err := s.db.First(&user, id).Error; err != nil {
			logger.Warn().Uint("participant_id", id).Uint("meeting_id", meeting.ID).
				Msg("skipping meeting participant: user not found")
			continue
		}
		if !s.policy.IsWorkspaceMember(user.ID, meeting.WorkspaceID) {
			logger.Warn().Uint("participant_id", id).Uint("meeting_id", meeting.ID).
				Msg("skipping meeting participant: not a workspace member")
			continue
		}

		participant := models.MeetingParticipant{
			MeetingID:     meeting.ID,
			ParticipantID: user.ID,
		}
		if err := s.db.Create(&participant).Error; err != nil {
			logger.Warn().Err(err).Uint("participant_id", id).Uint("meeting_id", meeting.ID).
				Msg("skipping meeting participant")
			continue
		}
		recipients = append(recipients, user.Email)
	}
	return recipients
}

// Get returns one meeting with participants. Members only.
func (s *MeetingService) Get(userID, workspaceID, id uint) (*models.Meeting, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	meeting, err := s.getMeeting(workspace.ID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireMember(userID, workspace); err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *MeetingService) getMeeting(workspaceID, id uint) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.db.Preload("Participants.Participant").
		Where("workspace_id = ?", workspaceID).
		First(&meeting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("meeting not found")
		}
		return nil, err
	}
	return &meeting, nil
}

// Update changes meeting fields. Admins only.
func (s *MeetingService) Update(userID, workspaceID, id uint, req *UpdateMeetingRequest) (*models.Meeting, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	meeting, err := s.getMeeting(workspace.ID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Agenda != "" {
		updates["agenda"] = req.Agenda
	}
	if req.Link != "" {
		updates["link"] = req.Link
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.DurationMins != nil {
		updates["duration_mins"] = *req.DurationMins
	}

	if len(updates) > 0 {
		if err := s.db.Model(meeting).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.activity.Record(workspace.ID, fmt.Sprintf("Meeting updated: %s", meeting.Agenda))
	}
	return meeting, nil
}

// Delete removes a meeting and its participants. Admins only.
func (s *MeetingService) Delete(userID, workspaceID, id uint) error {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	meeting, err := s.getMeeting(workspace.ID, id)
	if err != nil {
		return err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return err
	}

	if err := s.db.Delete(meeting).Error; err != nil {
		return err
	}
	s.activity.Record(workspace.ID, fmt.Sprintf("Meeting cancelled: %s", meeting.Agenda))
	return nil
}

// ListParticipants returns a meeting's participants. Members only.
func (s *MeetingService) ListParticipants(userID, workspaceID, meetingID uint) ([]models.MeetingParticipant, error) {
	meeting, err := s.Get(userID, workspaceID, meetingID)
	if err != nil {
		return nil, err
	}
	return meeting.Participants, nil
}

// AddParticipant enrols one workspace member into a meeting. Admins only.
// Unlike bulk enrolment at creation, a single add fails loudly on an invalid
// id or duplicate.
func (s *MeetingService) AddParticipant(userID, workspaceID, meetingID uint, req *AddParticipantRequest) (*models.MeetingParticipant, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	meeting, err := s.getMeeting(workspace.ID, meetingID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.ParticipantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationFailed("participant id does not resolve to a user")
		}
		return nil, err
	}
	if !s.policy.IsWorkspaceMember(user.ID, workspace.ID) {
		return nil, response.NewValidationFailed("participant must be a workspace member")
	}

	participant := models.MeetingParticipant{
		MeetingID:     meeting.ID,
		ParticipantID: user.ID,
	}
	if err := s.db.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewValidationFailed("user is already a participant of this meeting")
		}
		return nil, err
	}

	participant.Participant = &user
	return &participant, nil
}

// RemoveParticipant removes one participant row. Admins only.
func (s *MeetingService) RemoveParticipant(userID, workspaceID, meetingID, id uint) error {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return err
	}
	meeting, err := s.getMeeting(workspace.ID, meetingID)
	if err != nil {
		return err
	}
	if err := s.policy.RequireAdmin(userID, workspace); err != nil {
		return err
	}

	var participant models.MeetingParticipant
	err = s.db.Where("meeting_id = ?", meeting.ID).First(&participant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("participant not found")
		}
		return err
	}
	return s.db.Delete(&participant).Error
}
