package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/nandha2804/TMS/internal/auth/domain"
	autherror "github.com/nandha2804/TMS/internal/errors"
	"github.com/nandha2804/TMS/internal/task/domain"
	"github.com/nandha2804/TMS/internal/task/dto"
	"github.com/nandha2804/TMS/pkg/constant"
)

type TaskService struct {
	repo domain.TaskRepository
}

func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, input dto.CreateTaskInput, creator *authdomain.User) (*dto.TaskOutput, error) {
	now := time.Now()

	task := &domain.Task{
		ID:                uuid.NewString(),
		Title:             input.Title,
		Description:       input.Description,
		DueDate:           input.DueDate,
		Priority:          input.Priority,
		Status:            input.Status,
		CreatorID:         creator.ID,
		AssigneeID:        input.AssigneeID,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Re-read to populate the creator/assignee refs.
	created, err := s.repo.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, autherror.ErrTaskNotFound
	}

	out := dto.NewTaskOutput(created)

	return &out, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*dto.TaskOutput, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, autherror.ErrTaskNotFound
	}

	out := dto.NewTaskOutput(task)

	return &out, nil
}

func (s *TaskService) List(ctx context.Context, filter domain.Filter) ([]dto.TaskOutput, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewTaskOutputs(tasks), nil
}

// ListMine returns the caller's tasks, either created or assigned.
func (s *TaskService) ListMine(ctx context.Context, userID, listType string) ([]dto.TaskOutput, error) {
	filter := domain.Filter{AssigneeID: userID}
	if listType == "created" {
		filter = domain.Filter{CreatorID: userID}
	}

	return s.List(ctx, filter)
}

func (s *TaskService) ListOverdue(ctx context.Context, userID string) ([]dto.TaskOutput, error) {
	tasks, err := s.repo.ListOverdue(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewTaskOutputs(tasks), nil
}

func (s *TaskService) Stats(ctx context.Context, userID string) (*dto.StatsOutput, error) {
	stats, err := s.repo.StatsByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.StatsOutput{
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		Overdue:    stats.Overdue,
	}, nil
}

// Update applies a partial update. Only the creator, the assignee, or an
// admin may update a task.
func (s *TaskService) Update(ctx context.Context, id string, input dto.UpdateTaskInput, user *authdomain.User) (*dto.TaskOutput, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, autherror.ErrTaskNotFound
	}

	if task.CreatorID != user.ID && task.AssigneeID != user.ID && user.Role != constant.RoleAdmin {
		return nil, autherror.ErrForbidden
	}

	applyUpdate(task, input)
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, autherror.ErrTaskNotFound
	}

	out := dto.NewTaskOutput(updated)

	return &out, nil
}

// Delete removes a task. Only the creator or an admin may delete it.
func (s *TaskService) Delete(ctx context.Context, id string, user *authdomain.User) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return autherror.ErrTaskNotFound
	}

	if task.CreatorID != user.ID && user.Role != constant.RoleAdmin {
		return autherror.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func applyUpdate(task *domain.Task, input dto.UpdateTaskInput) {
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
	}
	if input.IsRecurring != nil {
		task.IsRecurring = *input.IsRecurring
	}
	if input.RecurrencePattern != nil {
		task.RecurrencePattern = *input.RecurrencePattern
	}
}
