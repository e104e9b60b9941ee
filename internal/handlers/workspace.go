package handlers

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
	activityService  *services.ActivityService
	mediaDir         string
}

func NewWorkspaceHandler(db *gorm.DB, cfg *config.Config) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: services.NewWorkspaceService(db),
		activityService:  services.NewActivityService(db),
		mediaDir:         cfg.Media.Dir,
	}
}

// List returns the caller's workspaces
// GET /api/workspace
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaceService.List(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, workspaces)
}

// Create creates a workspace owned by the caller
// POST /api/workspace
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req services.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workspace, err := h.workspaceService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, workspace)
}

// Get returns one workspace
// GET /api/workspace/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	workspace, err := h.workspaceService.Get(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, workspace)
}

// Update changes workspace fields
// PUT /api/workspace/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	var req services.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, workspace)
}

// Delete removes a workspace
// DELETE /api/workspace/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	if err := h.workspaceService.Delete(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Role returns the caller's role in the workspace
// GET /api/workspace/:id/role
func (h *WorkspaceHandler) Role(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	role, err := h.workspaceService.Role(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"role": role})
}

// ListUpdates returns the newest activity entries
// GET /api/workspace/:id/updates
func (h *WorkspaceHandler) ListUpdates(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	// Members only; reuse the workspace read guard.
	if _, err := h.workspaceService.Get(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	updates, err := h.activityService.List(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, updates)
}

// UploadImage stores a workspace image and records its reference
// POST /api/workspace/:id/image
func (h *WorkspaceHandler) UploadImage(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return
	}

	// Authorize before touching the filesystem.
	if _, err := h.workspaceService.GetOwned(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	if err := os.MkdirAll(h.mediaDir, 0755); err != nil {
		response.ServerError(c, "failed to prepare media directory")
		return
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaDir, filename)); err != nil {
		response.ServerError(c, "failed to store image")
		return
	}

	workspace, err := h.workspaceService.SetImage(middleware.GetUserID(c), id, "/media/"+filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, workspace)
}
