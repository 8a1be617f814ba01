package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-dashboard/internal/model"
)

type PlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func (r *PlayerRepository) FindByID(ctx context.Context, templateID string, id string) (model.Player, error) {
	var p model.Player
	err := r.pool.QueryRow(ctx,
		`SELECT id, template_id, name, position, rating, notes, created_at, updated_at
		 FROM players WHERE id = $1 AND template_id = $2`, id, templateID).
		Scan(&p.ID, &p.TemplateID, &p.Name, &p.Position, &p.Rating, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Player{}, model.ErrPlayerNotFound
	}
	if err != nil {
		return model.Player{}, fmt.Errorf("find player by id: %w", err)
	}
	return p, nil
}

func (r *PlayerRepository) ListByTemplate(ctx context.Context, templateID string) ([]model.Player, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, template_id, name, position, rating, notes, created_at, updated_at
		 FROM players WHERE template_id = $1 ORDER BY name`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]model.Player, 0)
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.TemplateID, &p.Name, &p.Position, &p.Rating, &p.Notes,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *PlayerRepository) Create(ctx context.Context, p model.Player) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO players (id, template_id, name, position, rating, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.TemplateID, p.Name, p.Position, p.Rating, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p model.Player) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE players SET name = $3, position = $4, rating = $5, notes = $6, updated_at = now()
		 WHERE id = $1 AND template_id = $2`,
		p.ID, p.TemplateID, p.Name, p.Position, p.Rating, p.Notes)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, templateID string, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM players WHERE id = $1 AND template_id = $2`, id, templateID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}
