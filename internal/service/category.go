package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	c := &domain.Category{Name: name, Description: description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Category not found with id: %d", id)
	}
	return c, nil
}

func (s *categoryService) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	c, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, notFoundOr(err, "Category not found with name: %s", name)
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != c.Name {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}
	c.Name = name
	c.Description = description

	if err := s.categories.Update(ctx, c); err != nil {
		return nil, notFoundOr(err, "Category not found with id: %d", id)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Category not found with id: %d", id)
	}
	logger.InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}

// ensureNameFree fails with Conflict when another category already uses name.
func (s *categoryService) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.categories.GetByName(ctx, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return domain.Conflict("Category already exists with name: %s", name)
	}
	return nil
}
