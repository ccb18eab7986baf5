package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/product_catalog/internal/apperr"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

var DefaultCategories = []string{
	"UI Kits", "Templates", "Icons", "Fonts", "Graphics",
	"Code Libraries", "Plugins", "Themes", "Tools", "Other",
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
	EnsureCategories(ctx context.Context, names []string) (int64, error)
}

var _ CategoryStore = (*repo.GormRepo)(nil)

type CategoryService struct {
	Repo CategoryStore
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	items, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, storeError(ctx, "list_categories", err, "")
	}
	return items, nil
}

func (s *CategoryService) Create(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	c := models.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if c.Name == "" {
		return nil, apperr.Validation(`"name" is not allowed to be empty`)
	}
	if err := s.Repo.CreateCategory(ctx, &c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Conflict("Category already exists")
		}
		return nil, storeError(ctx, "create_category", err, "")
	}
	return &c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return storeError(ctx, "delete_category", err, "Category not found")
	}
	return nil
}

func (s *CategoryService) EnsureDefaults(ctx context.Context) (int64, error) {
	return s.Repo.EnsureCategories(ctx, DefaultCategories)
}
