package dto

import (
	"time"

	"github.com/nandha2804/TMS/internal/task/domain"
)

type CreateTaskInput struct {
	Title             string    `json:"title" validate:"required"`
	Description       string    `json:"description"`
	DueDate           time.Time `json:"dueDate" validate:"required"`
	Priority          string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status            string    `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	AssigneeID        string    `json:"assignee" validate:"required,uuid"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurrencePattern string    `json:"recurrencePattern"`
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	DueDate           *time.Time `json:"dueDate"`
	Priority          *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status            *string    `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	AssigneeID        *string    `json:"assignee" validate:"omitempty,uuid"`
	IsRecurring       *bool      `json:"isRecurring"`
	RecurrencePattern *string    `json:"recurrencePattern"`
}

type UserRefOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TaskOutput struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	DueDate           time.Time     `json:"dueDate"`
	Priority          string        `json:"priority"`
	Status            string        `json:"status"`
	Creator           UserRefOutput `json:"creator"`
	Assignee          UserRefOutput `json:"assignee"`
	IsRecurring       bool          `json:"isRecurring"`
	RecurrencePattern string        `json:"recurrencePattern,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type StatsOutput struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}

func NewTaskOutput(task *domain.Task) TaskOutput {
	return TaskOutput{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		DueDate:           task.DueDate,
		Priority:          task.Priority,
		Status:            task.Status,
		Creator:           UserRefOutput{ID: task.Creator.ID, Name: task.Creator.Name, Email: task.Creator.Email},
		Assignee:          UserRefOutput{ID: task.Assignee.ID, Name: task.Assignee.Name, Email: task.Assignee.Email},
		IsRecurring:       task.IsRecurring,
		RecurrencePattern: task.RecurrencePattern,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}

func NewTaskOutputs(tasks []domain.Task) []TaskOutput {
	out := make([]TaskOutput, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskOutput(&tasks[i]))
	}

	return out
}
