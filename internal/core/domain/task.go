package domain

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// TaskPriority ranks how urgent a task is.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusDone}

// TaskPriorities lists every accepted priority in display order.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

const (
	DefaultStatus   = StatusToDo
	DefaultPriority = PriorityMedium
)

// Valid reports whether s is one of TaskStatuses.
func (s TaskStatus) Valid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of TaskPriorities.
func (p TaskPriority) Valid() bool {
	for _, known := range TaskPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64        `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
	UserID      int64        `json:"user_id" bson:"user_id"`
}

// OwnedBy reports whether the task belongs to userID.
func (t *Task) OwnedBy(userID int64) bool {
	return t.UserID == userID
}
