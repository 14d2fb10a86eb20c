package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-crm/internal/domain"
)

// TaskBoard represents the task_boards table
type TaskBoard struct {
	Base
	Name        string         `gorm:"column:name;type:text;not null"`
	Description *string        `gorm:"column:description;type:text"`
	OwnerID     *uuid.UUID     `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
	IsArchived  bool           `gorm:"column:is_archived;not null"`
	Settings    datatypes.JSON `gorm:"column:settings;type:jsonb;not null;default:'{}'"`
}

// TableName specifies the table name for the TaskBoard model
func (TaskBoard) TableName() string {
	return "task_boards"
}

// TaskList represents the task_lists table
type TaskList struct {
	Base
	BoardID  uuid.UUID `gorm:"column:board_id;type:uuid;not null"`
	Name     string    `gorm:"column:name;type:text;not null"`
	Position int       `gorm:"column:position;not null"`
	WIPLimit *int      `gorm:"column:wip_limit"`
}

// TableName specifies the table name for the TaskList model
func (TaskList) TableName() string {
	return "task_lists"
}

// Task represents the tasks table
type Task struct {
	Base
	BoardID      uuid.UUID            `gorm:"column:board_id;type:uuid;not null"`
	ListID       uuid.UUID            `gorm:"column:list_id;type:uuid;not null"`
	ParentTaskID *uuid.UUID           `gorm:"column:parent_task_id;type:uuid"`
	Title        string               `gorm:"column:title;type:text;not null"`
	Description  *string              `gorm:"column:description;type:text"`
	Status       domain.TaskStatus    `gorm:"column:status;type:task_status;not null;default:todo"`
	Priority     domain.PriorityLevel `gorm:"column:priority;type:priority_level;not null;default:medium"`
	Position     int                  `gorm:"column:position;not null"`
	StartDate    *time.Time           `gorm:"column:start_date"`
	DueDate      *time.Time           `gorm:"column:due_date"`
	// CompletedAt must be set when the status is done
	CompletedAt      *time.Time         `gorm:"column:completed_at"`
	EstimatedMinutes *int               `gorm:"column:estimated_minutes"`
	EntityID         *uuid.UUID         `gorm:"column:entity_id;type:uuid"`
	EntityType       *domain.EntityType `gorm:"column:entity_type;type:entity_type"`
	OwnerID          *uuid.UUID         `gorm:"column:owner_id;type:uuid;default:auth.uid()"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// TaskAssignment represents the task_assignments table
type TaskAssignment struct {
	Base
	TaskID     uuid.UUID  `gorm:"column:task_id;type:uuid;not null"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	AssignedBy *uuid.UUID `gorm:"column:assigned_by;type:uuid"`
	// Role is one of assignee, reviewer or watcher
	Role string `gorm:"column:role;type:text;not null;default:assignee"`
}

// TableName specifies the table name for the TaskAssignment model
func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// TaskDependency represents the task_dependencies table
type TaskDependency struct {
	Base
	TaskID          uuid.UUID             `gorm:"column:task_id;type:uuid;not null"`
	DependsOnTaskID uuid.UUID             `gorm:"column:depends_on_task_id;type:uuid;not null"`
	DependencyType  domain.DependencyType `gorm:"column:dependency_type;type:dependency_type;not null;default:finish_to_start"`
}

// TableName specifies the table name for the TaskDependency model
func (TaskDependency) TableName() string {
	return "task_dependencies"
}

// TaskComment represents the task_comments table
type TaskComment struct {
	Base
	TaskID          uuid.UUID  `gorm:"column:task_id;type:uuid;not null"`
	AuthorID        uuid.UUID  `gorm:"column:author_id;type:uuid;not null"`
	ParentCommentID *uuid.UUID `gorm:"column:parent_comment_id;type:uuid"`
	Content         string     `gorm:"column:content;type:text;not null"`
	EditedAt        *time.Time `gorm:"column:edited_at"`
}

// TableName specifies the table name for the TaskComment model
func (TaskComment) TableName() string {
	return "task_comments"
}

// TaskTimeEntry represents the task_time_entries table
type TaskTimeEntry struct {
	Base
	TaskID    uuid.UUID `gorm:"column:task_id;type:uuid;not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	StartedAt time.Time `gorm:"column:started_at;not null"`
	EndedAt   time.Time `gorm:"column:ended_at;not null"`
	// DurationMinutes is computed by the database from the period
	DurationMinutes int     `gorm:"column:duration_minutes;->"`
	Description     *string `gorm:"column:description;type:text"`
	IsBillable      bool    `gorm:"column:is_billable;not null"`
}

// TableName specifies the table name for the TaskTimeEntry model
func (TaskTimeEntry) TableName() string {
	return "task_time_entries"
}
