package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-dashboard/internal/model"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) FindByID(ctx context.Context, templateID string, id string) (model.Task, error) {
	var t model.Task
	var assignee *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, template_id, title, description, status, assignee_id, due_at, created_at, updated_at
		 FROM tasks WHERE id = $1 AND template_id = $2`, id, templateID).
		Scan(&t.ID, &t.TemplateID, &t.Title, &t.Description, &t.Status, &assignee, &t.DueAt,
			&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, model.ErrTaskNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("find task by id: %w", err)
	}
	if assignee != nil {
		t.AssigneeID = *assignee
	}
	return t, nil
}

func (r *TaskRepository) ListByTemplate(ctx context.Context, templateID string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, template_id, title, description, status, assignee_id, due_at, created_at, updated_at
		 FROM tasks WHERE template_id = $1 ORDER BY created_at DESC`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var assignee *string
		if err := rows.Scan(&t.ID, &t.TemplateID, &t.Title, &t.Description, &t.Status, &assignee,
			&t.DueAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		if assignee != nil {
			t.AssigneeID = *assignee
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t model.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, template_id, title, description, status, assignee_id, due_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		t.ID, t.TemplateID, t.Title, t.Description, t.Status, t.AssigneeID, t.DueAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t model.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $3, description = $4, status = $5, assignee_id = NULLIF($6, ''),
		        due_at = $7, updated_at = now()
		 WHERE id = $1 AND template_id = $2`,
		t.ID, t.TemplateID, t.Title, t.Description, t.Status, t.AssigneeID, t.DueAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, templateID string, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND template_id = $2`, id, templateID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}
