package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/domain"
	"github.com/feral-file/ff-crm/internal/store/schema"
)

// CreateBoardInput represents a new task board
type CreateBoardInput struct {
	Name        string
	Description *string
	Settings    json.RawMessage
}

// CreateTaskInput represents a new task
type CreateTaskInput struct {
	ListID       uuid.UUID
	ParentTaskID *uuid.UUID
	Title        string
	Description  *string
	Priority     domain.PriorityLevel
	StartDate    *time.Time
	DueDate      *time.Time
	// EstimatedMinutes is optional
	EstimatedMinutes *int
	EntityID         *uuid.UUID
	EntityType       *domain.EntityType
}

// AddCommentInput represents a comment on a task
type AddCommentInput struct {
	TaskID uuid.UUID
	// AuthorID defaults to the actor
	AuthorID        *uuid.UUID
	ParentCommentID *uuid.UUID
	Content         string
}

// LogTimeInput represents time spent on a task
type LogTimeInput struct {
	TaskID uuid.UUID
	// UserID defaults to the actor
	UserID      *uuid.UUID
	StartedAt   time.Time
	EndedAt     time.Time
	Description *string
	IsBillable  bool
}

// TaskFilter narrows ListTasks
type TaskFilter struct {
	BoardID    *uuid.UUID
	ListID     *uuid.UUID
	Statuses   []domain.TaskStatus
	AssigneeID *uuid.UUID
	EntityID   *uuid.UUID
	Pagination
}

// CreateBoard inserts a task board owned by the actor
func (s *pgStore) CreateBoard(ctx context.Context, input CreateBoardInput) (*schema.TaskBoard, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: board name is required", domain.ErrInvalidInput)
	}

	board := schema.TaskBoard{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OwnerID:     actorRef(ctx),
		Settings:    datatypes.JSON(input.Settings),
	}
	board.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &board)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &board, nil
}

// CreateList appends a list to a board
func (s *pgStore) CreateList(ctx context.Context, boardID uuid.UUID, name string, wipLimit *int) (*schema.TaskList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: list name is required", domain.ErrInvalidInput)
	}

	list := schema.TaskList{
		BoardID:  boardID,
		Name:     strings.TrimSpace(name),
		WIPLimit: wipLimit,
	}
	list.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if _, err := lockLive[schema.TaskBoard](tx, boardID); err != nil {
			return err
		}
		position, err := nextPosition(tx, &schema.TaskList{}, "board_id = ?", boardID)
		if err != nil {
			return err
		}
		list.Position = position
		return create(tx, &list)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &list, nil
}

func nextPosition(tx *gorm.DB, model any, query string, args ...any) (int, error) {
	var last int
	err := live(tx.Model(model)).
		Where(query, args...).
		Select("coalesce(max(position), -1)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// checkWIPLimit refuses to add a task to a list that is at its WIP limit
func checkWIPLimit(tx *gorm.DB, list *schema.TaskList) error {
	if list.WIPLimit == nil {
		return nil
	}

	var open int64
	err := live(tx.Model(&schema.Task{})).
		Where("list_id = ? AND status NOT IN ?", list.ID, []domain.TaskStatus{domain.TaskStatusDone, domain.TaskStatusArchived}).
		Count(&open).Error
	if err != nil {
		return err
	}
	if open >= int64(*list.WIPLimit) {
		return fmt.Errorf("list %q is at its WIP limit of %d: %w", list.Name, *list.WIPLimit, domain.ErrConstraintViolation)
	}
	return nil
}

// CreateTask appends a task to the end of a list
func (s *pgStore) CreateTask(ctx context.Context, input CreateTaskInput) (*schema.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrInvalidInput)
	}
	if (input.EntityID == nil) != (input.EntityType == nil) {
		return nil, fmt.Errorf("%w: entity id and type go together", domain.ErrInvalidInput)
	}
	if input.Priority != "" && !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, input.Priority)
	}

	task := schema.Task{
		ListID:           input.ListID,
		ParentTaskID:     input.ParentTaskID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Priority:         input.Priority,
		StartDate:        input.StartDate,
		DueDate:          input.DueDate,
		EstimatedMinutes: input.EstimatedMinutes,
		EntityID:         input.EntityID,
		EntityType:       input.EntityType,
		OwnerID:          actorRef(ctx),
	}
	task.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		list, err := lockLive[schema.TaskList](tx, input.ListID)
		if err != nil {
			return err
		}
		if err := checkWIPLimit(tx, list); err != nil {
			return err
		}
		task.BoardID = list.BoardID
		task.Position, err = nextPosition(tx, &schema.Task{}, "list_id = ?", list.ID)
		if err != nil {
			return err
		}
		return create(tx, &task)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// MoveTask moves a task to position within a list of the same board
func (s *pgStore) MoveTask(ctx context.Context, id uuid.UUID, version int, listID uuid.UUID, position int) (*schema.Task, error) {
	if position < 0 {
		return nil, fmt.Errorf("%w: position must not be negative", domain.ErrInvalidInput)
	}

	var task schema.Task
	err := s.write(ctx, func(tx *gorm.DB) error {
		current, err := mustGetLive[schema.Task](tx, id)
		if err != nil {
			return err
		}
		list, err := lockLive[schema.TaskList](tx, listID)
		if err != nil {
			return err
		}
		if list.BoardID != current.BoardID {
			return fmt.Errorf("%w: list belongs to another board", domain.ErrInvalidInput)
		}
		if list.ID != current.ListID {
			if err := checkWIPLimit(tx, list); err != nil {
				return err
			}
		}

		// Make room at the target position
		err = live(tx.Model(&schema.Task{})).
			Where("list_id = ? AND position >= ? AND id <> ?", listID, position, id).
			Update("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return err
		}

		return updateVersioned(tx, &task, id, version, map[string]any{
			"list_id":  listID,
			"position": position,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}
	return &task, nil
}

// AssignTask assigns a user to a task as assignee, reviewer or watcher
func (s *pgStore) AssignTask(ctx context.Context, taskID, userID uuid.UUID, role string) (*schema.TaskAssignment, error) {
	if role == "" {
		role = "assignee"
	}

	assignment := schema.TaskAssignment{
		TaskID:     taskID,
		UserID:     userID,
		AssignedBy: actorRef(ctx),
		Role:       role,
	}
	assignment.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		if _, err := mustGetLive[schema.Task](tx, taskID); err != nil {
			return err
		}
		return create(tx, &assignment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}
	return &assignment, nil
}

// dependencyLockID is the transaction advisory lock held while a dependency
// is checked and inserted
const dependencyLockID = 7_251_994_032

// AddDependency records that taskID depends on dependsOnID. It fails with
// ErrDependencyCycle when dependsOnID already depends on taskID, directly
// or transitively.
func (s *pgStore) AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID, dependencyType domain.DependencyType) (*schema.TaskDependency, error) {
	if taskID == dependsOnID {
		return nil, domain.ErrDependencyCycle
	}
	if dependencyType == "" {
		dependencyType = domain.DependencyTypeFinishToStart
	}
	if !dependencyType.Valid() {
		return nil, fmt.Errorf("%w: unknown dependency type %q", domain.ErrInvalidInput, dependencyType)
	}

	dependency := schema.TaskDependency{
		TaskID:          taskID,
		DependsOnTaskID: dependsOnID,
		DependencyType:  dependencyType,
	}
	dependency.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		// Two new edges can close a cycle without sharing an endpoint, or a
		// board, so every dependency write walks the graph under one lock
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", dependencyLockID).Error; err != nil {
			return err
		}
		if _, err := lockLive[schema.Task](tx, taskID); err != nil {
			return err
		}
		if _, err := lockLive[schema.Task](tx, dependsOnID); err != nil {
			return err
		}

		cycle, err := dependsOn(dependsOnID, taskID, func(frontier []uuid.UUID) ([]uuid.UUID, error) {
			var next []uuid.UUID
			err := live(tx.Model(&schema.TaskDependency{})).
				Where("task_id IN ?", frontier).
				Pluck("depends_on_task_id", &next).Error
			return next, err
		})
		if err != nil {
			return err
		}
		if cycle {
			return fmt.Errorf("task %s already depends on %s: %w", dependsOnID, taskID, domain.ErrDependencyCycle)
		}

		return create(tx, &dependency)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add dependency: %w", err)
	}
	return &dependency, nil
}

// dependsOn walks the dependency graph breadth first from start and reports
// whether target is reachable. edges returns the direct dependencies of a
// set of tasks.
func dependsOn(start, target uuid.UUID, edges func([]uuid.UUID) ([]uuid.UUID, error)) (bool, error) {
	visited := map[uuid.UUID]bool{start: true}
	frontier := []uuid.UUID{start}

	for len(frontier) > 0 {
		next, err := edges(frontier)
		if err != nil {
			return false, err
		}

		frontier = frontier[:0]
		for _, id := range next {
			if id == target {
				return true, nil
			}
			if !visited[id] {
				visited[id] = true
				frontier = append(frontier, id)
			}
		}
	}

	return false, nil
}

// CompleteTask marks a task done. It refuses while a task it depends on
// through a finish dependency is still open.
func (s *pgStore) CompleteTask(ctx context.Context, id uuid.UUID, version int) (*schema.Task, error) {
	var task schema.Task
	err := s.write(ctx, func(tx *gorm.DB) error {
		var open int64
		err := tx.Table("task_dependencies d").
			Joins("JOIN tasks b ON b.id = d.depends_on_task_id AND b.deleted_at IS NULL").
			Where("d.task_id = ? AND d.deleted_at IS NULL", id).
			Where("d.dependency_type IN ?", []domain.DependencyType{domain.DependencyTypeFinishToStart, domain.DependencyTypeFinishToFinish}).
			Where("b.status NOT IN ?", []domain.TaskStatus{domain.TaskStatusDone, domain.TaskStatusArchived}).
			Count(&open).Error
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("task %s is blocked by %d open tasks: %w", id, open, domain.ErrConstraintViolation)
		}

		return updateVersioned(tx, &task, id, version, map[string]any{
			"status":       domain.TaskStatusDone,
			"completed_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return &task, nil
}

// AddComment adds a comment to a task
func (s *pgStore) AddComment(ctx context.Context, input AddCommentInput) (*schema.TaskComment, error) {
	author := input.AuthorID
	if author == nil {
		author = actorRef(ctx)
	}
	if author == nil {
		return nil, fmt.Errorf("%w: comment author is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", domain.ErrInvalidInput)
	}

	comment := schema.TaskComment{
		TaskID:          input.TaskID,
		AuthorID:        *author,
		ParentCommentID: input.ParentCommentID,
		Content:         input.Content,
	}
	comment.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &comment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}

// LogTime records a time entry on a task
func (s *pgStore) LogTime(ctx context.Context, input LogTimeInput) (*schema.TaskTimeEntry, error) {
	user := input.UserID
	if user == nil {
		user = actorRef(ctx)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: time entry user is required", domain.ErrInvalidInput)
	}
	if !input.EndedAt.After(input.StartedAt) {
		return nil, fmt.Errorf("%w: time entry must end after it starts", domain.ErrInvalidInput)
	}

	entry := schema.TaskTimeEntry{
		TaskID:      input.TaskID,
		UserID:      *user,
		StartedAt:   input.StartedAt.UTC(),
		EndedAt:     input.EndedAt.UTC(),
		Description: input.Description,
		IsBillable:  input.IsBillable,
	}
	entry.CreatedBy = actorRef(ctx)

	err := s.write(ctx, func(tx *gorm.DB) error {
		return create(tx, &entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log time: %w", err)
	}
	return &entry, nil
}

// ListTasks returns the live tasks matching filter in board order
func (s *pgStore) ListTasks(ctx context.Context, filter TaskFilter) ([]schema.Task, error) {
	var tasks []schema.Task
	err := s.read(ctx, func(tx *gorm.DB) error {
		q := live(filter.Pagination.apply(tx.Model(&schema.Task{})))
		if filter.BoardID != nil {
			q = q.Where("board_id = ?", *filter.BoardID)
		}
		if filter.ListID != nil {
			q = q.Where("list_id = ?", *filter.ListID)
		}
		if len(filter.Statuses) > 0 {
			q = q.Where("status IN ?", filter.Statuses)
		}
		if filter.EntityID != nil {
			q = q.Where("entity_id = ?", *filter.EntityID)
		}
		if filter.AssigneeID != nil {
			q = q.Where("id IN (?)", tx.Model(&schema.TaskAssignment{}).
				Select("task_id").
				Where("user_id = ? AND deleted_at IS NULL", *filter.AssigneeID))
		}
		return q.Order("list_id, position ASC").Find(&tasks).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
