package handler

import (
	"time"

	"github.com/taskmate/taskmate-api/internal/core/domain"
	"github.com/taskmate/taskmate-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// createTaskRequest documents the create body; handlers decode it through
// bindTaskFields so absent and null fields can be told apart.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" enums:"To Do,In Progress,Done"`
	Priority    *string `json:"priority,omitempty" enums:"Low,Medium,High,Critical"`
}

// updateTaskRequest documents the update body. Every field is optional.
type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" enums:"To Do,In Progress,Done"`
	Priority    *string `json:"priority,omitempty" enums:"Low,Medium,High,Critical"`
}

// taskResponse is the public task shape. The field set is part of the API
// contract.
type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      int64     `json:"user_id"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Total int            `json:"total"`
}

type taskEnvelope struct {
	Task taskResponse `json:"task"`
}

type taskMutationResponse struct {
	Message string       `json:"message"`
	Task    taskResponse `json:"task"`
}

type priorityBreakdown struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

type statsResponse struct {
	TotalTasks        int               `json:"total_tasks"`
	TodoTasks         int               `json:"todo_tasks"`
	InProgressTasks   int               `json:"in_progress_tasks"`
	DoneTasks         int               `json:"done_tasks"`
	PriorityBreakdown priorityBreakdown `json:"priority_breakdown"`
}

type dashboardResponse struct {
	Stats       statsResponse  `json:"stats"`
	RecentTasks []taskResponse `json:"recent_tasks"`
}

// --- Domain → HTTP response ---

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
		UserID:      t.UserID,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toStatsResponse(s *ports.TaskStats) statsResponse {
	return statsResponse{
		TotalTasks:      s.Total,
		TodoTasks:       s.ByStatus[domain.StatusToDo],
		InProgressTasks: s.ByStatus[domain.StatusInProgress],
		DoneTasks:       s.ByStatus[domain.StatusDone],
		PriorityBreakdown: priorityBreakdown{
			Low:      s.ByPriority[domain.PriorityLow],
			Medium:   s.ByPriority[domain.PriorityMedium],
			High:     s.ByPriority[domain.PriorityHigh],
			Critical: s.ByPriority[domain.PriorityCritical],
		},
	}
}
