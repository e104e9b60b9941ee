package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type MeetingHandler struct {
	meetingService *services.MeetingService
}

func NewMeetingHandler(db *gorm.DB, email *services.EmailService) *MeetingHandler {
	return &MeetingHandler{
		meetingService: services.NewMeetingService(db, email),
	}
}

// List returns the workspace's meetings
// GET /api/workspace/:id/meetings
func (h *MeetingHandler) List(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	meetings, err := h.meetingService.List(middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, meetings)
}

// Create schedules a meeting and notifies accepted participants
// POST /api/workspace/:id/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	var req services.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	meeting, err := h.meetingService.Create(middleware.GetUserID(c), workspaceID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, meeting)
}

// Get returns one meeting with its participants
// GET /api/workspace/:id/meetings/:meetingID
func (h *MeetingHandler) Get(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	meeting, err := h.meetingService.Get(middleware.GetUserID(c), workspaceID, meetingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, meeting)
}

// Update changes meeting fields
// PUT /api/workspace/:id/meetings/:meetingID
func (h *MeetingHandler) Update(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	var req services.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	meeting, err := h.meetingService.Update(middleware.GetUserID(c), workspaceID, meetingID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, meeting)
}

// Delete cancels a meeting
// DELETE /api/workspace/:id/meetings/:meetingID
func (h *MeetingHandler) Delete(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	if err := h.meetingService.Delete(middleware.GetUserID(c), workspaceID, meetingID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListParticipants returns a meeting's participants
// GET /api/workspace/:id/meetings/:meetingID/participants
func (h *MeetingHandler) ListParticipants(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	participants, err := h.meetingService.ListParticipants(middleware.GetUserID(c), workspaceID, meetingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, participants)
}

// AddParticipant enrols a workspace member into the meeting
// POST /api/workspace/:id/meetings/:meetingID/participants
func (h *MeetingHandler) AddParticipant(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}

	var req services.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	participant, err := h.meetingService.AddParticipant(middleware.GetUserID(c), workspaceID, meetingID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, participant)
}

// RemoveParticipant removes one participant row
// DELETE /api/workspace/:id/meetings/:meetingID/participants/:participantID
func (h *MeetingHandler) RemoveParticipant(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	meetingID, ok := uintParam(c, "meetingID")
	if !ok {
		response.BadRequest(c, "invalid meeting id")
		return
	}
	participantID, ok := uintParam(c, "participantID")
	if !ok {
		response.BadRequest(c, "invalid participant id")
		return
	}

	if err := h.meetingService.RemoveParticipant(middleware.GetUserID(c), workspaceID, meetingID, participantID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
