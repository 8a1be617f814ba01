package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-dashboard/internal/model"
)

type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (model.Template, error) {
	var t model.Template
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, open, created_at, updated_at FROM templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Open, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Template{}, model.ErrTemplateNotFound
	}
	if err != nil {
		return model.Template{}, fmt.Errorf("find template by id: %w", err)
	}
	return t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, open, created_at, updated_at FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// ListVisible returns open templates plus the ones the user is a member of.
func (r *TemplateRepository) ListVisible(ctx context.Context, userID string) ([]model.Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.name, t.open, t.created_at, t.updated_at
		 FROM templates t
		 WHERE t.open
		    OR EXISTS (SELECT 1 FROM template_members m WHERE m.template_id = t.id AND m.user_id = $1)
		 ORDER BY t.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list visible templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func collectTemplates(rows pgx.Rows) ([]model.Template, error) {
	templates := make([]model.Template, 0)
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Open, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) Create(ctx context.Context, t model.Template) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO templates (id, name, open, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Open, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) Update(ctx context.Context, t model.Template) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE templates SET name = $2, open = $3, updated_at = now() WHERE id = $1`,
		t.ID, t.Name, t.Open)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepository) IsMember(ctx context.Context, templateID string, userID string) (bool, error) {
	var member bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM template_members WHERE template_id = $1 AND user_id = $2)`,
		templateID, userID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("check template membership: %w", err)
	}
	return member, nil
}

func (r *TemplateRepository) AddMember(ctx context.Context, templateID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO template_members (template_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, templateID, userID)
	if err != nil {
		return fmt.Errorf("add template member: %w", err)
	}
	return nil
}

func (r *TemplateRepository) RemoveMember(ctx context.Context, templateID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM template_members WHERE template_id = $1 AND user_id = $2`, templateID, userID)
	if err != nil {
		return fmt.Errorf("remove template member: %w", err)
	}
	return nil
}

func (r *TemplateRepository) ListMembers(ctx context.Context, templateID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM template_members WHERE template_id = $1 ORDER BY added_at`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template members: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
