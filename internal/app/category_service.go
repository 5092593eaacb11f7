package app

import (
	"context"

	"jobboard/internal/domain/category"
)

type CategoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}
