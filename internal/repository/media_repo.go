package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-dashboard/internal/model"
)

// MediaRecord is the stored form of a media item; the filesystem path never
// leaves the repository/service layer.
type MediaRecord struct {
	model.MediaItem
	StoredPath string
}

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (MediaRecord, error) {
	var m MediaRecord
	err := r.pool.QueryRow(ctx,
		`SELECT id, file_name, stored_path, content_type, size_bytes, uploaded_by_id, created_at
		 FROM media_items WHERE id = $1`, id).
		Scan(&m.ID, &m.FileName, &m.StoredPath, &m.ContentType, &m.SizeBytes, &m.UploadedByID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return MediaRecord{}, model.ErrMediaNotFound
	}
	if err != nil {
		return MediaRecord{}, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

func (r *MediaRepository) List(ctx context.Context) ([]model.MediaItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, file_name, content_type, size_bytes, uploaded_by_id, created_at
		 FROM media_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := make([]model.MediaItem, 0)
	for rows.Next() {
		var m model.MediaItem
		if err := rows.Scan(&m.ID, &m.FileName, &m.ContentType, &m.SizeBytes, &m.UploadedByID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MediaRepository) Create(ctx context.Context, m MediaRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO media_items (id, file_name, stored_path, content_type, size_bytes, uploaded_by_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.FileName, m.StoredPath, m.ContentType, m.SizeBytes, m.UploadedByID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create media item: %w", err)
	}
	return nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMediaNotFound
	}
	return nil
}
