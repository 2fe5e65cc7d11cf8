package ports

import (
	"context"

	"github.com/taskmate/taskmate-api/internal/core/domain"
)

// ListTasksInput holds the optional list filters exactly as the client sent
// them. Unknown status or priority values are ignored, not rejected.
type ListTasksInput struct {
	Status   string
	Priority string
	Search   string
}

// CreateTaskInput carries a new task. Nil optional fields take their
// defaults; a non-nil empty Status or Priority is invalid.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *string
	Priority    *string
}

// UpdateTaskInput is a partial update: only non-nil fields change.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// Empty reports whether the update carries no fields at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil && in.Priority == nil
}

// TaskStats is the aggregate view over a principal's visible tasks.
type TaskStats struct {
	Total      int
	ByStatus   map[domain.TaskStatus]int
	ByPriority map[domain.TaskPriority]int
}

// Dashboard combines statistics with the most recently updated tasks.
type Dashboard struct {
	Stats  TaskStats
	Recent []*domain.Task
}

// TaskService defines the task use cases. Every method applies the
// principal's visibility and ownership rules itself.
type TaskService interface {
	ListTasks(ctx context.Context, p domain.Principal, input ListTasksInput) ([]*domain.Task, error)
	GetTask(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, p domain.Principal, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, p domain.Principal, id int64, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, p domain.Principal, id int64) error
	Stats(ctx context.Context, p domain.Principal) (*TaskStats, error)
	Dashboard(ctx context.Context, p domain.Principal) (*Dashboard, error)
}
