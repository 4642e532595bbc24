package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_task_repository.go -package=mocks github.com/nandha2804/TMS/internal/task/domain TaskRepository

// Filter narrows a task listing. Zero values mean "no constraint".
type Filter struct {
	Search     string
	Status     string
	Priority   string
	AssigneeID string
	CreatorID  string
	DueBefore  *time.Time
	DueAfter   *time.Time
	Limit      int
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter Filter) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error
	StatsByAssignee(ctx context.Context, userID string) (*Stats, error)
	ListOverdue(ctx context.Context, userID string) ([]Task, error)
}
