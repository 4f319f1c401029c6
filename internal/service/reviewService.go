package service

import (
	"context"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	Create(ctx context.Context, titleID int64, author *models.User, req dto.CreateReviewDTO) (*models.Review, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Update(ctx context.Context, review *models.Review, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(ctx context.Context, review *models.Review) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
}

// Create posts a review. At most one review per (author, title): the
// pre-check gives a friendly message, the composite unique index resolves
// the concurrent-submission race, and both surface as the same
// validation error.
func (s *reviewService) Create(ctx context.Context, titleID int64, author *models.User, req dto.CreateReviewDTO) (*models.Review, error) {
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByAuthorAndTitle(ctx, author.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewValidationError("title", "An author may only have one review per title.")
	}

	review := &models.Review{
		Text:     req.Text,
		AuthorID: author.ID,
		TitleID:  titleID,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, NewValidationError("title", "An author may only have one review per title.")
		}
		return nil, err
	}

	review.Author = *author
	return review, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return review, nil
}

// Update touches text and score only; author and title are fixed, so the
// uniqueness invariant cannot be broken here.
func (s *reviewService) Update(ctx context.Context, review *models.Review, req dto.UpdateReviewDTO) (*models.Review, error) {
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, review *models.Review) error {
	err := s.reviewRepo.Delete(ctx, review.ID)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *reviewService) titleExists(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
