package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskService struct {
	db       *gorm.DB
	policy   *PolicyService
	activity *ActivityService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{
		db:       db,
		policy:   NewPolicyService(db),
		activity: NewActivityService(db),
	}
}

type CreateTaskRequest struct {
	Name     string     `json:"name" binding:"required,max=127"`
	Column   string     `json:"column" binding:"omitempty,oneof=todo doing complete"`
	Priority string     `json:"priority" binding:"omitempty,oneof=high mid low"`
	Duration uint       `json:"duration"`
	Deadline *time.Time `json:"deadline"`
}

type UpdateTaskRequest struct {
	Name     string     `json:"name" binding:"omitempty,max=127"`
	Column   string     `json:"column" binding:"omitempty,oneof=todo doing complete"`
	Index    *int       `json:"index" binding:"omitempty,gte=0"`
	Priority string     `json:"priority" binding:"omitempty,oneof=high mid low"`
	Duration *uint      `json:"duration"`
	Deadline *time.Time `json:"deadline"`
}

type CreateSubtaskRequest struct {
	Name string `json:"name" binding:"required,max=127"`
}

type UpdateSubtaskRequest struct {
	Name      string `json:"name" binding:"omitempty,max=127"`
	Completed *bool  `json:"completed"`
}

type AddTaskMemberRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}

type AddTaskDependencyRequest struct {
	DependencyID uint `json:"dependency_id" binding:"required"`
}

// taskScope resolves the workspace/project pair and applies the combined
// predicate every task-level operation requires: workspace membership plus
// project visibility.
func (s *TaskService) taskScope(userID, workspaceID, projectID uint) (*models.Project, error) {
	workspace, err := s.policy.GetWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	project, err := s.policy.GetProject(workspace.ID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.RequireTaskAccess(userID, workspace, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *TaskService) getTask(projectID, id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("project_id = ?", projectID).First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}
	return &task, nil
}

// columnCount counts the tasks a project currently holds in a column.
// Map conditions let GORM quote the reserved column name per dialect.
func (s *TaskService) columnCount(projectID uint, column string) int64 {
	var count int64
	s.db.Model(&models.Task{}).
		Where(map[string]interface{}{"project_id": projectID, "column": column}).
		Count(&count)
	return count
}

// List returns the project's tasks ordered by column then index.
func (s *TaskService) List(userID, workspaceID, projectID uint) ([]models.Task, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	err = s.db.Where("project_id = ?", project.ID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "column"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "index"}}).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create appends a task. The column defaults to todo; the position index is
// set to the current todo count of the project regardless of the assigned
// column (long-standing behavior, kept as-is).
func (s *TaskService) Create(userID, workspaceID, projectID uint, req *CreateTaskRequest) (*models.Task, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID: project.ID,
		Name:      req.Name,
		Column:    req.Column,
		Priority:  req.Priority,
		Duration:  req.Duration,
		Deadline:  req.Deadline,
		Index:     int(s.columnCount(project.ID, models.ColumnTodo)),
	}
	if task.Column == "" {
		task.Column = models.ColumnTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMid
	}
	if task.Duration == 0 {
		task.Duration = 1
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.activity.Record(project.WorkspaceID, fmt.Sprintf("Task created: %s", task.Name))
	return &task, nil
}

// Get returns one task with subtasks, assignees and dependencies inlined.
func (s *TaskService) Get(userID, workspaceID, projectID, id uint) (*models.Task, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("Subtasks").
		Preload("Members.Member").
		Preload("Dependencies.Dependency").
		First(task, task.ID).Error
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update changes task fields. A column change without an explicit index
// appends the task to the destination column (index = current count there)
// and records the move in the activity feed. The vacated column keeps its
// gap; indices are never compacted.
func (s *TaskService) Update(userID, workspaceID, projectID, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}

	columnChanged := req.Column != "" && req.Column != task.Column
	if columnChanged {
		updates["column"] = req.Column
		if req.Index == nil {
			updates["index"] = int(s.columnCount(project.ID, req.Column))
		}
	}
	if req.Index != nil {
		updates["index"] = *req.Index
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if columnChanged {
		s.activity.Record(project.WorkspaceID,
			fmt.Sprintf("Task %s moved to %s", task.Name, req.Column))
	}
	return task, nil
}

// Delete removes a task and, via cascade, its subtasks, assignees and
// dependency rows.
func (s *TaskService) Delete(userID, workspaceID, projectID, id uint) error {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return err
	}
	task, err := s.getTask(project.ID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(task).Error; err != nil {
		return err
	}
	s.activity.Record(project.WorkspaceID, fmt.Sprintf("Task deleted: %s", task.Name))
	return nil
}

// --- Subtasks ---

func (s *TaskService) ListSubtasks(userID, workspaceID, projectID, taskID uint) ([]models.Subtask, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return nil, err
	}

	var subtasks []models.Subtask
	if err := s.db.Where("task_id = ?", task.ID).Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (s *TaskService) AddSubtask(userID, workspaceID, projectID, taskID uint, req *CreateSubtaskRequest) (*models.Subtask, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return nil, err
	}

	subtask := models.Subtask{TaskID: task.ID, Name: req.Name}
	if err := s.db.Create(&subtask).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (s *TaskService) UpdateSubtask(userID, workspaceID, projectID, taskID, id uint, req *UpdateSubtaskRequest) (*models.Subtask, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return nil, err
	}

	var subtask models.Subtask
	err = s.db.Where("task_id = ?", task.ID).First(&subtask, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("subtask not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if len(updates) > 0 {
		if err := s.db.Model(&subtask).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &subtask, nil
}

func (s *TaskService) RemoveSubtask(userID, workspaceID, projectID, taskID, id uint) error {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return err
	}

	result := s.db.Where("task_id = ?", task.ID).Delete(&models.Subtask{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("subtask not found")
	}
	return nil
}

// --- Assignees ---

func (s *TaskService) AddMember(userID, workspaceID, projectID, taskID uint, req *AddTaskMemberRequest) (*models.TaskMember, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationFailed("member id does not resolve to a user")
		}
		return nil, err
	}
	if !s.policy.IsWorkspaceMember(user.ID, project.WorkspaceID) {
		return nil, response.NewValidationFailed("task members must be workspace members")
	}

	member := models.TaskMember{TaskID: task.ID, MemberID: user.ID}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	member.Member = &user
	return &member, nil
}

func (s *TaskService) RemoveMember(userID, workspaceID, projectID, taskID, id uint) error {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return err
	}

	result := s.db.Where("task_id = ?", task.ID).Delete(&models.TaskMember{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("task member not found")
	}
	return nil
}

// --- Dependencies ---

// AddDependency records that the task depends on another task of the same
// project. Self-dependencies and cycles are not guarded against.
func (s *TaskService) AddDependency(userID, workspaceID, projectID, taskID uint, req *AddTaskDependencyRequest) (*models.TaskDependency, error) {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return nil, err
	}

	var dependency models.Task
	err = s.db.Where("project_id = ?", project.ID).First(&dependency, req.DependencyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidationFailed("dependency id does not resolve to a task in this project")
		}
		return nil, err
	}

	dep := models.TaskDependency{TaskID: task.ID, DependencyID: dependency.ID}
	if err := s.db.Create(&dep).Error; err != nil {
		return nil, err
	}

	dep.Dependency = &dependency
	return &dep, nil
}

func (s *TaskService) RemoveDependency(userID, workspaceID, projectID, taskID, id uint) error {
	project, err := s.taskScope(userID, workspaceID, projectID)
	if err != nil {
		return err
	}
	task, err := s.getTask(project.ID, taskID)
	if err != nil {
		return err
	}

	result := s.db.Where("task_id = ?", task.ID).Delete(&models.TaskDependency{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("task dependency not found")
	}
	return nil
}
