package models

import "time"

// Kanban columns.
const (
	ColumnTodo     = "todo"
	ColumnDoing    = "doing"
	ColumnComplete = "complete"
)

// Task priorities.
const (
	PriorityHigh = "high"
	PriorityMid  = "mid"
	PriorityLow  = "low"
)

// Task is a unit of work under a project, ordered within a Kanban column by a
// zero-based index. Indices are append-to-end on creation and column moves;
// the vacated column is never renumbered, so gaps are allowed.
type Task struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ProjectID    uint             `gorm:"index;not null" json:"project_id"`
	Project      *Project         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Name         string           `gorm:"size:127;not null" json:"name"`
	Column       string           `gorm:"size:31;default:todo" json:"column"`
	Index        int              `gorm:"not null;default:0" json:"index"`
	Priority     string           `gorm:"size:31;default:mid" json:"priority"`
	Duration     uint             `gorm:"default:1" json:"duration"`
	Deadline     *time.Time       `json:"deadline"`
	Members      []TaskMember     `gorm:"foreignKey:TaskID" json:"members,omitempty"`
	Subtasks     []Subtask        `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	Dependencies []TaskDependency `gorm:"foreignKey:TaskID" json:"dependencies,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// TaskMember assigns a workspace member to a task.
type TaskMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Task      *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	MemberID  uint      `gorm:"not null" json:"member_id"`
	Member    *User     `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskMember) TableName() string { return "task_members" }

// Subtask is a named checklist item under a task.
type Subtask struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Task      *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:127;not null" json:"name"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subtask) TableName() string { return "subtasks" }

// TaskDependency records that a task depends on another task. Nothing guards
// against self-dependencies or cycles.
type TaskDependency struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TaskID       uint      `gorm:"index;not null" json:"task_id"`
	Task         *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	DependencyID uint      `gorm:"not null" json:"dependency_id"`
	Dependency   *Task     `gorm:"foreignKey:DependencyID;constraint:OnDelete:CASCADE" json:"dependency,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (TaskDependency) TableName() string { return "task_dependencies" }
