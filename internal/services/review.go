package services

import (
	"context"

	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/types"
	"movie-reviews-backend/internal/utils"
)

// ReviewStorer is the slice of the store layer the review service consumes.
type ReviewStorer interface {
	GetByMovie(ctx context.Context, movieID int) ([]models.Review, error)
	GetByMovieAndReviewer(ctx context.Context, movieID int, reviewerName string) ([]models.Review, error)
	GetByReviewer(ctx context.Context, reviewerName string) ([]models.Review, error)
	Create(ctx context.Context, review models.Review) (*models.Review, error)
	Update(ctx context.Context, movieID int, reviewerName string, patch models.ReviewPatch) (*models.Review, error)
}

type ReviewService struct {
	store ReviewStorer
}

func NewReviewService(store ReviewStorer) *ReviewService {
	return &ReviewService{store: store}
}

func (s *ReviewService) GetByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	return s.store.GetByMovie(ctx, movieID)
}

func (s *ReviewService) GetByMovieAndReviewer(ctx context.Context, movieID int, reviewerName string) ([]models.Review, error) {
	return s.store.GetByMovieAndReviewer(ctx, movieID, reviewerName)
}

func (s *ReviewService) GetByReviewer(ctx context.Context, reviewerName string) ([]models.Review, error) {
	return s.store.GetByReviewer(ctx, reviewerName)
}

// Create upserts the review. The binding layer has already checked the fields
// are present; this checks the values make sense before they reach the table.
func (s *ReviewService) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	if !utils.IsValidRating(review.Rating) {
		return nil, types.NewValidationError("rating must be between 1 and 10")
	}
	if !utils.IsValidReviewDate(review.ReviewDate) {
		return nil, types.NewValidationError("review date must be an ISO date (YYYY-MM-DD)")
	}

	review.ReviewerName = utils.SanitizeString(review.ReviewerName)
	review.Content = utils.SanitizeString(review.Content)

	return s.store.Create(ctx, review)
}

// Update patches an existing review's rating and/or content. Key fields are
// immutable and an absent record is a NotFoundError, never an upsert.
func (s *ReviewService) Update(ctx context.Context, movieID int, reviewerName string, patch models.ReviewPatch) (*models.Review, error) {
	if patch.IsEmpty() {
		return nil, types.NewValidationError("update requires a rating or content field")
	}
	if patch.Rating != nil && !utils.IsValidRating(*patch.Rating) {
		return nil, types.NewValidationError("rating must be between 1 and 10")
	}

	return s.store.Update(ctx, movieID, reviewerName, patch)
}
