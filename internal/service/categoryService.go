package service

import (
	"context"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, search, page, pageSize)
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*models.Category, error) {
	// Pre-check the slug for a field-scoped message; the unique index
	// still backs this under concurrent creates.
	if _, err := s.categoryRepo.FindBySlug(ctx, req.Slug); err == nil {
		return nil, NewValidationError("slug", "A category with that slug already exists.")
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewValidationError("name", "A category with that name or slug already exists.")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	err := s.categoryRepo.DeleteBySlug(ctx, slug)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
