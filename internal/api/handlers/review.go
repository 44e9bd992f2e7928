package handlers

import (
	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/services"
	"movie-reviews-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetMovieReviews handles GET /movies/:movieId/reviews.
func (h *ReviewHandler) GetMovieReviews(c *gin.Context) {
	req, err := parseByMovie(c.Param("movieId"))
	if err != nil {
		utils.SendError(c, err)
		return
	}

	reviews, err := h.reviewService.GetByMovie(c.Request.Context(), req.MovieID)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	if len(reviews) == 0 {
		utils.SendNotFound(c, "No reviews found. Verify movie Id and try again.")
		return
	}

	utils.SendData(c, reviews)
}

// GetMovieReviewsByReviewer handles GET /movies/:movieId/reviews/:reviewerName.
func (h *ReviewHandler) GetMovieReviewsByReviewer(c *gin.Context) {
	req, err := parseByMovieAndReviewer(c.Param("movieId"), c.Param("reviewerName"))
	if err != nil {
		utils.SendError(c, err)
		return
	}

	reviews, err := h.reviewService.GetByMovieAndReviewer(c.Request.Context(), req.MovieID, req.ReviewerName)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	if len(reviews) == 0 {
		utils.SendNotFound(c, "No reviews found. Verify movie Id and reviewer name and try again.")
		return
	}

	utils.SendData(c, reviews)
}

// GetReviewsByReviewer handles GET /movies/reviews/:reviewerName, the
// cross-movie lookup.
func (h *ReviewHandler) GetReviewsByReviewer(c *gin.Context) {
	req, err := parseByReviewer(c.Param("reviewerName"))
	if err != nil {
		utils.SendError(c, err)
		return
	}

	reviews, err := h.reviewService.GetByReviewer(c.Request.Context(), req.ReviewerName)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	if len(reviews) == 0 {
		utils.SendNotFound(c, "No reviews found. Verify reviewer name and try again.")
		return
	}

	utils.SendData(c, reviews)
}

// AddReview handles POST /movies/reviews. The session authorizer has already
// run by the time this executes.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		utils.SendValidationError(c, "review body must include MovieId, ReviewerName, ReviewDate, Rating and Content")
		return
	}

	created, err := h.reviewService.Create(c.Request.Context(), review)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendData(c, created)
}

// UpdateReview handles PUT /movies/:movieId/reviews/:reviewerName.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var body updateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "invalid update body")
		return
	}

	key, patch, err := parseUpdate(c.Param("movieId"), c.Param("reviewerName"), body)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	updated, err := h.reviewService.Update(c.Request.Context(), key.MovieID, key.ReviewerName, patch)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendData(c, updated)
}
