package handlers

import (
	"strconv"

	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/types"
	"movie-reviews-backend/internal/utils"
)

// The parsing boundary. Path parameters arrive as untyped strings; nothing
// loosely typed flows past these functions. All of them are pure.

type byMovieRequest struct {
	MovieID int
}

type byMovieAndReviewerRequest struct {
	MovieID      int
	ReviewerName string
}

type byReviewerRequest struct {
	ReviewerName string
}

// updateBody is the update request's JSON shape. The key fields are optional
// in the body but must match the path when present.
type updateBody struct {
	MovieID      *int    `json:"MovieId"`
	ReviewerName *string `json:"ReviewerName"`
	Rating       *int    `json:"Rating"`
	Content      *string `json:"Content"`
}

func parseMovieID(raw string) (int, error) {
	movieID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.NewValidationError("missing or invalid movie Id")
	}
	return movieID, nil
}

func parseByMovie(movieID string) (byMovieRequest, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return byMovieRequest{}, err
	}
	return byMovieRequest{MovieID: id}, nil
}

func parseByMovieAndReviewer(movieID, reviewerName string) (byMovieAndReviewerRequest, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return byMovieAndReviewerRequest{}, types.NewValidationError("missing movie Id or reviewer name")
	}
	if utils.SanitizeString(reviewerName) == "" {
		return byMovieAndReviewerRequest{}, types.NewValidationError("missing movie Id or reviewer name")
	}
	return byMovieAndReviewerRequest{MovieID: id, ReviewerName: reviewerName}, nil
}

func parseByReviewer(reviewerName string) (byReviewerRequest, error) {
	if utils.SanitizeString(reviewerName) == "" {
		return byReviewerRequest{}, types.NewValidationError("missing reviewer name")
	}
	return byReviewerRequest{ReviewerName: reviewerName}, nil
}

// parseUpdate merges the path key with the body, rejecting a body whose key
// fields disagree with the path.
func parseUpdate(movieID, reviewerName string, body updateBody) (byMovieAndReviewerRequest, models.ReviewPatch, error) {
	key, err := parseByMovieAndReviewer(movieID, reviewerName)
	if err != nil {
		return byMovieAndReviewerRequest{}, models.ReviewPatch{}, err
	}

	if body.MovieID != nil && *body.MovieID != key.MovieID {
		return byMovieAndReviewerRequest{}, models.ReviewPatch{}, types.NewValidationError("movie Id in body does not match path")
	}
	if body.ReviewerName != nil && *body.ReviewerName != key.ReviewerName {
		return byMovieAndReviewerRequest{}, models.ReviewPatch{}, types.NewValidationError("reviewer name in body does not match path")
	}

	return key, models.ReviewPatch{Rating: body.Rating, Content: body.Content}, nil
}
