package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type TeamMemberHandler struct {
	teamService *services.TeamMemberService
}

func NewTeamMemberHandler(db *gorm.DB) *TeamMemberHandler {
	return &TeamMemberHandler{
		teamService: services.NewTeamMemberService(db),
	}
}

// List returns the workspace's members
// GET /api/workspace/:id/team
func (h *TeamMemberHandler) List(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	members, err := h.teamService.List(middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Add enrols a user into the workspace
// POST /api/workspace/:id/team
func (h *TeamMemberHandler) Add(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	var req services.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.teamService.Add(middleware.GetUserID(c), workspaceID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// Get returns one membership row
// GET /api/workspace/:id/team/:memberID
func (h *TeamMemberHandler) Get(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	memberID, ok := uintParam(c, "memberID")
	if !ok {
		response.BadRequest(c, "invalid team member id")
		return
	}

	member, err := h.teamService.Get(middleware.GetUserID(c), workspaceID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}

// Remove deletes a membership row
// DELETE /api/workspace/:id/team/:memberID
func (h *TeamMemberHandler) Remove(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	memberID, ok := uintParam(c, "memberID")
	if !ok {
		response.BadRequest(c, "invalid team member id")
		return
	}

	if err := h.teamService.Remove(middleware.GetUserID(c), workspaceID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
