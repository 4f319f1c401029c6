package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]repository.TitleWithRating, int64, error)
	Get(ctx context.Context, id int64) (*repository.TitleWithRating, error)
	Create(ctx context.Context, req dto.CreateTitleDTO) (*repository.TitleWithRating, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*repository.TitleWithRating, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	genreRepo    repository.GenreRepository
	categoryRepo repository.CategoryRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	genreRepo repository.GenreRepository,
	categoryRepo repository.CategoryRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		genreRepo:    genreRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]repository.TitleWithRating, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) Get(ctx context.Context, id int64) (*repository.TitleWithRating, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*repository.TitleWithRating, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
		Genres:      genres,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return s.titleRepo.FindByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*repository.TitleWithRating, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := current.Title

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Year != nil {
		// The year bound applies on every mutating path, not just the
		// read serializer.
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, &title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, &title, genres); err != nil {
			return nil, err
		}
	}

	return s.titleRepo.FindByID(ctx, title.ID)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	err := s.titleRepo.Delete(ctx, id)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func validateYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return NewValidationError("year", fmt.Sprintf("Year cannot be greater than the current year (%d).", current))
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique(slugs)) {
		return nil, NewValidationError("genre", "One or more genre slugs do not exist.")
	}
	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NewValidationError("category", "Category with that slug does not exist.")
		}
		return nil, err
	}
	return category, nil
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
