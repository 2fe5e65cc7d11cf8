package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@taskmate.com"
	defaultAdminPassword = "admin123"
)

type sampleTask struct {
	title, description string
	status             string
	priority           string
}

var sampleTasks = []sampleTask{
	{
		title:       "Setup TaskMate Project",
		description: "Initialize the TaskMate task management application",
		status:      string(domain.StatusDone),
		priority:    string(domain.PriorityHigh),
	},
	{
		title:       "Create User Authentication",
		description: "Implement user registration, login, and session management",
		status:      string(domain.StatusInProgress),
		priority:    string(domain.PriorityMedium),
	},
	{
		title:       "Build Dashboard",
		description: "Create a dashboard showing task statistics and overview",
		status:      string(domain.StatusToDo),
		priority:    string(domain.PriorityMedium),
	},
}

// Seeder populates an empty store with a default admin and sample tasks.
type Seeder struct {
	users  ports.UserRepository
	auth   ports.AuthService
	tasks  ports.TaskService
	logger zerolog.Logger
}

func NewSeeder(users ports.UserRepository, auth ports.AuthService, tasks ports.TaskService, logger zerolog.Logger) *Seeder {
	return &Seeder{users: users, auth: auth, tasks: tasks, logger: logger}
}

// Seed does nothing when any user already exists.
func (s *Seeder) Seed(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	admin, err := s.auth.Register(ctx, defaultAdminUsername, defaultAdminEmail, defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}

	owner := domain.AuthenticatedAs(admin.ID, admin.Username)
	for _, st := range sampleTasks {
		description, status, priority := st.description, st.status, st.priority
		if _, err := s.tasks.CreateTask(ctx, owner, ports.CreateTaskInput{
			Title:       st.title,
			Description: &description,
			Status:      &status,
			Priority:    &priority,
		}); err != nil {
			return fmt.Errorf("seed: create task %q: %w", st.title, err)
		}
	}

	s.logger.Warn().Str("username", defaultAdminUsername).Msg("default admin user created, change its password")
	return nil
}
