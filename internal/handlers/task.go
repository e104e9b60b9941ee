package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prismhq/prism/internal/middleware"
	"github.com/prismhq/prism/internal/services"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db),
	}
}

// taskPath pulls the workspace/project ids every task route carries.
func taskPath(c *gin.Context) (workspaceID, projectID uint, ok bool) {
	workspaceID, ok = uintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid workspace id")
		return 0, 0, false
	}
	projectID, ok = uintParam(c, "projectID")
	if !ok {
		response.BadRequest(c, "invalid project id")
		return 0, 0, false
	}
	return workspaceID, projectID, true
}

// List returns the project's tasks ordered by column then index
// GET /api/workspace/:id/projects/:projectID/tasks
func (h *TaskHandler) List(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(middleware.GetUserID(c), workspaceID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create adds a task to the project board
// POST /api/workspace/:id/projects/:projectID/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(middleware.GetUserID(c), workspaceID, projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// Get returns one task with subtasks, assignees and dependencies
// GET /api/workspace/:id/projects/:projectID/tasks/:taskID
func (h *TaskHandler) Get(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.Get(middleware.GetUserID(c), workspaceID, projectID, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Update changes task fields, including board position
// PUT /api/workspace/:id/projects/:projectID/tasks/:taskID
func (h *TaskHandler) Update(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(middleware.GetUserID(c), workspaceID, projectID, taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Delete removes a task
// DELETE /api/workspace/:id/projects/:projectID/tasks/:taskID
func (h *TaskHandler) Delete(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	if err := h.taskService.Delete(middleware.GetUserID(c), workspaceID, projectID, taskID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListSubtasks returns a task's subtasks
// GET /api/workspace/:id/projects/:projectID/tasks/:taskID/subtasks
func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	subtasks, err := h.taskService.ListSubtasks(middleware.GetUserID(c), workspaceID, projectID, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, subtasks)
}

// AddSubtask appends a subtask to a task's checklist
// POST /api/workspace/:id/projects/:projectID/tasks/:taskID/subtasks
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subtask, err := h.taskService.AddSubtask(middleware.GetUserID(c), workspaceID, projectID, taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, subtask)
}

// UpdateSubtask renames or toggles a subtask
// PUT /api/workspace/:id/projects/:projectID/tasks/:taskID/subtasks/:subtaskID
func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}
	subtaskID, ok := uintParam(c, "subtaskID")
	if !ok {
		response.BadRequest(c, "invalid subtask id")
		return
	}

	var req services.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	subtask, err := h.taskService.UpdateSubtask(middleware.GetUserID(c), workspaceID, projectID, taskID, subtaskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, subtask)
}

// RemoveSubtask deletes a subtask
// DELETE /api/workspace/:id/projects/:projectID/tasks/:taskID/subtasks/:subtaskID
func (h *TaskHandler) RemoveSubtask(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}
	subtaskID, ok := uintParam(c, "subtaskID")
	if !ok {
		response.BadRequest(c, "invalid subtask id")
		return
	}

	if err := h.taskService.RemoveSubtask(middleware.GetUserID(c), workspaceID, projectID, taskID, subtaskID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddMember assigns a workspace member to the task
// POST /api/workspace/:id/projects/:projectID/tasks/:taskID/members
func (h *TaskHandler) AddMember(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.AddTaskMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.taskService.AddMember(middleware.GetUserID(c), workspaceID, projectID, taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember unassigns a member from the task
// DELETE /api/workspace/:id/projects/:projectID/tasks/:taskID/members/:memberID
func (h *TaskHandler) RemoveMember(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}
	memberID, ok := uintParam(c, "memberID")
	if !ok {
		response.BadRequest(c, "invalid task member id")
		return
	}

	if err := h.taskService.RemoveMember(middleware.GetUserID(c), workspaceID, projectID, taskID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddDependency links the task to another task it depends on
// POST /api/workspace/:id/projects/:projectID/tasks/:taskID/dependencies
func (h *TaskHandler) AddDependency(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.AddTaskDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dep, err := h.taskService.AddDependency(middleware.GetUserID(c), workspaceID, projectID, taskID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dep)
}

// RemoveDependency removes a dependency link
// DELETE /api/workspace/:id/projects/:projectID/tasks/:taskID/dependencies/:dependencyID
func (h *TaskHandler) RemoveDependency(c *gin.Context) {
	workspaceID, projectID, ok := taskPath(c)
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "taskID")
	if !ok {
		response.BadRequest(c, "invalid task id")
		return
	}
	dependencyID, ok := uintParam(c, "dependencyID")
	if !ok {
		response.BadRequest(c, "invalid dependency id")
		return
	}

	if err := h.taskService.RemoveDependency(middleware.GetUserID(c), workspaceID, projectID, taskID, dependencyID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
