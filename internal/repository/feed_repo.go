package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-dashboard/internal/model"
)

// MessageRepository backs the chat feed.
type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) List(ctx context.Context, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.author_id, u.display_name, m.body, m.created_at
		 FROM messages m JOIN users u ON u.id = m.author_id
		 ORDER BY m.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.AuthorName, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) Create(ctx context.Context, m model.Message) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO messages (id, author_id, body, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.AuthorID, m.Body, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (model.Message, error) {
	var m model.Message
	err := r.pool.QueryRow(ctx,
		`SELECT m.id, m.author_id, u.display_name, m.body, m.created_at
		 FROM messages m JOIN users u ON u.id = m.author_id WHERE m.id = $1`, id).
		Scan(&m.ID, &m.AuthorID, &m.AuthorName, &m.Body, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Message{}, model.ErrMessageNotFound
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("find message by id: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMessageNotFound
	}
	return nil
}

// QuoteRepository backs the quote board.
type QuoteRepository struct {
	pool *pgxpool.Pool
}

func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepository {
	return &QuoteRepository{pool: pool}
}

func (r *QuoteRepository) List(ctx context.Context) ([]model.Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, said_by, body, added_by_id, created_at FROM quotes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]model.Quote, 0)
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.ID, &q.SaidBy, &q.Body, &q.AddedByID, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *QuoteRepository) Create(ctx context.Context, q model.Quote) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quotes (id, said_by, body, added_by_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.SaidBy, q.Body, q.AddedByID, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuoteNotFound
	}
	return nil
}

// CommendationRepository backs the commendation feed.
type CommendationRepository struct {
	pool *pgxpool.Pool
}

func NewCommendationRepository(pool *pgxpool.Pool) *CommendationRepository {
	return &CommendationRepository{pool: pool}
}

func (r *CommendationRepository) List(ctx context.Context) ([]model.Commendation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, from_user_id, to_user_id, reason, created_at
		 FROM commendations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list commendations: %w", err)
	}
	defer rows.Close()

	commendations := make([]model.Commendation, 0)
	for rows.Next() {
		var c model.Commendation
		if err := rows.Scan(&c.ID, &c.FromUserID, &c.ToUserID, &c.Reason, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commendation row: %w", err)
		}
		commendations = append(commendations, c)
	}
	return commendations, rows.Err()
}

func (r *CommendationRepository) Create(ctx context.Context, c model.Commendation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO commendations (id, from_user_id, to_user_id, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.FromUserID, c.ToUserID, c.Reason, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create commendation: %w", err)
	}
	return nil
}
