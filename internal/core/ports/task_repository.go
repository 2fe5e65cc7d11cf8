package ports

import (
	"context"

	"github.com/taskmate/taskmate-api/internal/core/domain"
)

// TaskFilter carries the query the service layer has already scoped by
// visibility. Zero values mean "no constraint".
type TaskFilter struct {
	OwnerID  int64               // 0 = every owner; user ids start at 1
	Status   domain.TaskStatus   // exact match
	Priority domain.TaskPriority // exact match
	Search   string              // case-sensitive substring of title or description
	Limit    int                 // max rows; 0 = all
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create assigns the next task id to t and stores it.
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// Update replaces the mutable fields of an existing task. A task that
	// vanished since it was read yields domain.ErrTaskNotFound.
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
	// List returns matching tasks ordered by updated_at descending, then id
	// ascending.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
}
