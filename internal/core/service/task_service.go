package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

// RecentTasksLimit is how many tasks the dashboard shows.
const RecentTasksLimit = 5

// TaskService owns task visibility, ownership and query rules.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// timestamp returns the current time at the store's millisecond precision.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// scope returns the owner filter for read operations. Anonymous callers are
// not scoped and see every task.
func scope(p domain.Principal) int64 {
	if p.Authenticated {
		return p.UserID
	}
	return 0
}

// ListTasks returns the visible tasks matching input, most recently updated
// first.
func (s *TaskService) ListTasks(ctx context.Context, p domain.Principal, input ports.ListTasksInput) ([]*domain.Task, error) {
	filter := ports.TaskFilter{
		OwnerID: scope(p),
		Search:  input.Search,
	}
	if status := domain.TaskStatus(input.Status); status.Valid() {
		filter.Status = status
	}
	if priority := domain.TaskPriority(input.Priority); priority.Valid() {
		filter.Priority = priority
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask fetches a single task. An authenticated caller asking for someone
// else's task gets domain.ErrForbidden; anonymous callers may read any task.
func (s *TaskService) GetTask(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Authenticated && !task.OwnedBy(p.UserID) {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, p domain.Principal, input ports.CreateTaskInput) (*domain.Task, error) {
	if !p.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	if input.Title == "" {
		return nil, domain.ErrTitleRequired
	}

	status := domain.DefaultStatus
	if input.Status != nil {
		status = domain.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	priority := domain.DefaultPriority
	if input.Priority != nil {
		priority = domain.TaskPriority(*input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
	}
	var description string
	if input.Description != nil {
		description = *input.Description
	}

	now := s.timestamp()
	task := &domain.Task{
		Title:       input.Title,
		Description: description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      p.UserID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Int64("user_id", p.UserID).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info().Int64("task_id", task.ID).Int64("user_id", p.UserID).Msg("task created")
	return task, nil
}

// UpdateTask applies a partial update. Ownership is checked before the
// payload is validated, so a non-owner learns nothing about their input.
func (s *TaskService) UpdateTask(ctx context.Context, p domain.Principal, id int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if input.Empty() {
		return nil, domain.ErrNoUpdateFields
	}

	updated := *task
	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrTitleEmpty
		}
		updated.Title = *input.Title
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Status != nil {
		status := domain.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		updated.Status = status
	}
	if input.Priority != nil {
		priority := domain.TaskPriority(*input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		updated.Priority = priority
	}

	// Every accepted update advances updated_at, even if the clock does not.
	now := s.timestamp()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Millisecond)
	}
	updated.UpdatedAt = now

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", p.UserID).Msg("task updated")
	return &updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := s.ownedTask(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", p.UserID).Msg("task deleted")
	return nil
}

// ownedTask loads a task for mutation: the caller must be authenticated and
// must own it.
func (s *TaskService) ownedTask(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error) {
	if !p.Authenticated {
		return nil, domain.ErrUnauthenticated
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(task) {
		s.logger.Warn().Int64("task_id", id).Int64("user_id", p.UserID).Msg("task access denied")
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// Stats counts the visible tasks by status and priority.
func (s *TaskService) Stats(ctx context.Context, p domain.Principal) (*ports.TaskStats, error) {
	tasks, err := s.repo.List(ctx, ports.TaskFilter{OwnerID: scope(p)})
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	stats := aggregate(tasks)
	return &stats, nil
}

// Dashboard returns the caller's statistics and, for authenticated callers,
// their most recently updated tasks.
func (s *TaskService) Dashboard(ctx context.Context, p domain.Principal) (*ports.Dashboard, error) {
	stats, err := s.Stats(ctx, p)
	if err != nil {
		return nil, err
	}

	recent := []*domain.Task{}
	if p.Authenticated {
		recent, err = s.repo.List(ctx, ports.TaskFilter{OwnerID: p.UserID, Limit: RecentTasksLimit})
		if err != nil {
			return nil, fmt.Errorf("recent tasks: %w", err)
		}
	}

	return &ports.Dashboard{Stats: *stats, Recent: recent}, nil
}

func aggregate(tasks []*domain.Task) ports.TaskStats {
	stats := ports.TaskStats{
		Total:      len(tasks),
		ByStatus:   make(map[domain.TaskStatus]int, len(domain.TaskStatuses)),
		ByPriority: make(map[domain.TaskPriority]int, len(domain.TaskPriorities)),
	}
	for _, status := range domain.TaskStatuses {
		stats.ByStatus[status] = 0
	}
	for _, priority := range domain.TaskPriorities {
		stats.ByPriority[priority] = 0
	}
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
	}
	return stats
}
