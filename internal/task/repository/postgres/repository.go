package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	autherror "github.com/nandha2804/TMS/internal/errors"
	"github.com/nandha2804/TMS/internal/task/domain"
)

// DBTX is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.due_date, t.priority, t.status,
		t.creator_id, t.assignee_id, t.is_recurring, COALESCE(t.recurrence_pattern, ''),
		t.created_at, t.updated_at,
		cu.name, cu.email, au.name, au.email`

const taskFrom = `
	FROM tasks t
	JOIN users cu ON cu.id = t.creator_id
	JOIN users au ON au.id = t.assignee_id`

func (r *PostgresRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, title, description, due_date, priority, status,
			creator_id, assignee_id, is_recurring, recurrence_pattern, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, task.ID, task.Title, task.Description, task.DueDate, task.Priority, task.Status,
		task.CreatorID, task.AssigneeID, task.IsRecurring, nullable(task.RecurrencePattern),
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := "SELECT " + taskColumns + taskFrom + " WHERE t.id = $1 LIMIT 1;"

	row := r.db.QueryRow(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(t.title ILIKE %s OR t.description ILIKE %s)", p, p))
	}
	if filter.Status != "" {
		conds = append(conds, "t.status = "+arg(filter.Status))
	}
	if filter.Priority != "" {
		conds = append(conds, "t.priority = "+arg(filter.Priority))
	}
	if filter.AssigneeID != "" {
		conds = append(conds, "t.assignee_id = "+arg(filter.AssigneeID))
	}
	if filter.CreatorID != "" {
		conds = append(conds, "t.creator_id = "+arg(filter.CreatorID))
	}
	if filter.DueBefore != nil {
		conds = append(conds, "t.due_date <= "+arg(*filter.DueBefore))
	}
	if filter.DueAfter != nil {
		conds = append(conds, "t.due_date >= "+arg(*filter.DueAfter))
	}

	query := "SELECT " + taskColumns + taskFrom
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	return r.queryTasks(ctx, query, args...)
}

func (r *PostgresRepository) Update(ctx context.Context, task *domain.Task) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, priority = $5, status = $6,
			assignee_id = $7, is_recurring = $8, recurrence_pattern = $9, updated_at = $10
		WHERE id = $1
	`, task.ID, task.Title, task.Description, task.DueDate, task.Priority, task.Status,
		task.AssigneeID, task.IsRecurring, nullable(task.RecurrencePattern), task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrTaskNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrTaskNotFound
	}

	return nil
}

func (r *PostgresRepository) StatsByAssignee(ctx context.Context, userID string) (*domain.Stats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE due_date < now() AND status <> 'completed')
		FROM tasks
		WHERE assignee_id = $1;
	`
	var stats domain.Stats
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&stats.Total, &stats.Completed, &stats.InProgress, &stats.Overdue)
	if err != nil {
		return nil, fmt.Errorf("failed to get task stats: %w", err)
	}

	return &stats, nil
}

func (r *PostgresRepository) ListOverdue(ctx context.Context, userID string) ([]domain.Task, error) {
	query := "SELECT " + taskColumns + taskFrom + `
		WHERE t.assignee_id = $1 AND t.due_date < now() AND t.status <> 'completed'
		ORDER BY t.due_date ASC;`

	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Priority, &task.Status,
		&task.CreatorID, &task.AssigneeID, &task.IsRecurring, &task.RecurrencePattern,
		&task.CreatedAt, &task.UpdatedAt,
		&task.Creator.Name, &task.Creator.Email, &task.Assignee.Name, &task.Assignee.Email,
	)
	if err != nil {
		return nil, err
	}

	task.Creator.ID = task.CreatorID
	task.Assignee.ID = task.AssigneeID

	return &task, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
