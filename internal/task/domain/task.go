package domain

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// UserRef is the trimmed identity embedded in task reads.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

type Task struct {
	ID                string
	Title             string
	Description       string
	DueDate           time.Time
	Priority          string
	Status            string
	CreatorID         string
	AssigneeID        string
	IsRecurring       bool
	RecurrencePattern string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Populated on reads, not persisted on the task row.
	Creator  UserRef
	Assignee UserRef
}

// Stats aggregates a user's assigned tasks for the dashboard.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
}
