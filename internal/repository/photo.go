package repository

import (
	"context"
	"errors"

	"portfolio-server/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup or row-targeting write
	// matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness
	// constraint.
	ErrConflict = errors.New("already exists")
)

// PhotoUpdate carries the mutable metadata of a photo. The media object
// itself is never touched by an update.
type PhotoUpdate struct {
	Title       string
	Description string
	CategoryID  *int64
	IsFeatured  bool
}

// PhotoRepository exposes persistence operations for Photo rows.
// Reads join the category so listings can surface name/slug directly.
type PhotoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, photo *domain.Photo) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context) ([]domain.Photo, error)
	Update(ctx context.Context, id int64, update PhotoUpdate) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository manages the seeded category rows.
type CategoryRepository interface {
	Init(ctx context.Context) error
	Seed(ctx context.Context, categories []domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
}
