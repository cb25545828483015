package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
// Attachments and the activity log live in jsonb columns; the log is only
// ever appended to via the `||` operator so concurrent updates merge instead
// of overwriting each other.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = "id, owner, title, description, category, due_date, status, attachments, activity_log, created_at, updated_at"

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Task, error) {
	if owner == "" {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE owner = $1 ORDER BY created_at DESC", taskColumns)
	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if len(task.ActivityLog) == 0 {
		task.ActivityLog = []domain.Activity{domain.CreationActivity(task.Owner, time.Now())}
	}

	const query = `
	INSERT INTO tasks (id, owner, title, description, category, due_date, status, attachments, activity_log)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Owner,
		task.Title,
		task.Description,
		task.Category,
		task.DueDate,
		task.Status,
		marshalJSON(task.Attachments),
		marshalJSON(task.ActivityLog),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) error {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Attachments != nil {
		add("attachments", marshalJSON(*patch.Attachments))
	}
	if len(entries) > 0 {
		args = append(args, marshalJSON(entries))
		set = append(set, fmt.Sprintf("activity_log = activity_log || $%d::jsonb", len(args)))
	}

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $1", strings.Join(set, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const query = `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	// deleting an already-absent id is fine
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		attachments []byte
		activityLog []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.Owner,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.DueDate,
		&task.Status,
		&attachments,
		&activityLog,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	unmarshalJSON(attachments, &task.Attachments)
	unmarshalJSON(activityLog, &task.ActivityLog)

	return &task, nil
}
