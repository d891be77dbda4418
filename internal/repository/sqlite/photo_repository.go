package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
)

const createPhotosTable = `
CREATE TABLE IF NOT EXISTS photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	storage_key TEXT NOT NULL,
	url TEXT NOT NULL,
	original_name TEXT NOT NULL DEFAULT '',
	category_id INTEGER NULL REFERENCES categories(id) ON DELETE SET NULL,
	is_featured INTEGER NOT NULL DEFAULT 0,
	order_index INTEGER NOT NULL DEFAULT 0,
	uploaded_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_photos_category_id ON photos(category_id);
`

const photoSelect = `
SELECT p.id, p.title, p.description, p.storage_key, p.url, p.original_name,
	p.category_id, p.is_featured, p.order_index, p.uploaded_at,
	c.name, c.slug
FROM photos p
LEFT JOIN categories c ON p.category_id = c.id
`

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPhotosTable); err != nil {
		return fmt.Errorf("create photos table: %w", err)
	}
	return nil
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (int64, error) {
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO photos (title, description, storage_key, url, original_name, category_id, is_featured, order_index, uploaded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		photo.Title,
		photo.Description,
		photo.StorageKey,
		photo.URL,
		photo.OriginalName,
		photo.CategoryID,
		boolToInt(photo.IsFeatured),
		photo.OrderIndex,
		photo.UploadedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert photo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("photo last insert id: %w", err)
	}
	photo.ID = id
	return id, nil
}

func (r *PhotoRepository) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	row := r.db.QueryRowContext(ctx, photoSelect+`WHERE p.id = ?`, id)

	photo, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (r *PhotoRepository) List(ctx context.Context) ([]domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, photoSelect+`ORDER BY p.order_index ASC, p.uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Update(ctx context.Context, id int64, update repository.PhotoUpdate) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE photos
SET title = ?, description = ?, category_id = ?, is_featured = ?
WHERE id = ?`,
		update.Title,
		update.Description,
		update.CategoryID,
		boolToInt(update.IsFeatured),
		id,
	)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update photo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete photo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPhoto(row interface {
	Scan(dest ...any) error
}) (*domain.Photo, error) {
	var (
		photo    domain.Photo
		featured int
	)
	if err := row.Scan(
		&photo.ID,
		&photo.Title,
		&photo.Description,
		&photo.StorageKey,
		&photo.URL,
		&photo.OriginalName,
		&photo.CategoryID,
		&featured,
		&photo.OrderIndex,
		&photo.UploadedAt,
		&photo.CategoryName,
		&photo.CategorySlug,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan photo: %w", err)
	}
	photo.IsFeatured = featured != 0
	return &photo, nil
}

// sqlite has no boolean type; keep the 0/1 convention out of callers.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
