package service

import (
	"context"

	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
)

// DefaultCategories are seeded once at bootstrap.
var DefaultCategories = []domain.Category{
	{Name: "Retratos", Slug: "retratos", Description: "Fotografias de retratos profissionais"},
	{Name: "Paisagens", Slug: "paisagens", Description: "Fotografias de paisagens naturais"},
	{Name: "Eventos", Slug: "eventos", Description: "Fotografias de eventos e celebrações"},
}

// CategoryService exposes the read-only category surface.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	SeedDefaults(ctx context.Context) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) SeedDefaults(ctx context.Context) error {
	return s.categories.Seed(ctx, DefaultCategories)
}
