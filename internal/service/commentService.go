package service

import (
	"context"

	"github.com/qutha/yamdb-final/internal/dto"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	Create(ctx context.Context, titleID, reviewID int64, author *models.User, req dto.CreateCommentDTO) (*models.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment, req dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(ctx context.Context, comment *models.Comment) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, author *models.User, req dto.CreateCommentDTO) (*models.Comment, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: author.ID,
		ReviewID: reviewID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = *author
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, comment *models.Comment, req dto.UpdateCommentDTO) (*models.Comment, error) {
	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, comment *models.Comment) error {
	err := s.commentRepo.Delete(ctx, comment.ID)
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// reviewExists checks the (title, review) pair so comment routes 404 when
// the review does not belong to the title in the path.
func (s *commentService) reviewExists(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.FindByID(ctx, titleID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
