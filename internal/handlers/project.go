package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the projects visible to the caller
// GET /api/workspace/:id/projects
func (h *ProjectHandler) List(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	projects, err := h.projectService.List(middleware.GetUserID(c), workspaceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// Create adds a project to the workspace
// POST /api/workspace/:id/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.GetUserID(c), workspaceID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// Get returns one project with its members
// GET /api/workspace/:id/projects/:projectID
func (h *ProjectHandler) Get(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.Get(middleware.GetUserID(c), workspaceID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Update changes project fields
// PUT /api/workspace/:id/projects/:projectID
func (h *ProjectHandler) Update(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(middleware.GetUserID(c), workspaceID, projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project
// DELETE /api/workspace/:id/projects/:projectID
func (h *ProjectHandler) Delete(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projectService.Delete(middleware.GetUserID(c), workspaceID, projectID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListMembers returns the project's membership rows
// GET /api/workspace/:id/projects/:projectID/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	members, err := h.projectService.ListMembers(middleware.GetUserID(c), workspaceID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// AddMember enrols a workspace member into the project
// POST /api/workspace/:id/projects/:projectID/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.projectService.AddMember(middleware.GetUserID(c), workspaceID, projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember deletes one project membership row
// DELETE /api/workspace/:id/projects/:projectID/members/:memberID
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	workspaceID, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}
	projectID, ok := uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return
	}
	memberID, ok := uintParam(c, "memberID")
	if !ok {
		response.BadRequest(c, "invalid project member id")
		return
	}

	if err := h.projectService.RemoveMember(middleware.GetUserID(c), workspaceID, projectID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
