package routes

import (
	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/api/handlers"
	"movie-reviews-backend/internal/api/middleware"
	"movie-reviews-backend/internal/config"
	"movie-reviews-backend/internal/services"
	"movie-reviews-backend/internal/store"
	"movie-reviews-backend/pkg/logger"
)

func SetupRoutes(router *gin.Engine, reviewStore *store.ReviewStore, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	emailService := services.NewEmailService(cfg)

	var provider services.IdentityProvider
	if cfg.AuthProvider == "local" {
		provider = services.NewLocalProvider(cfg, emailService)
	} else {
		provider = services.NewCognitoProvider(cfg)
	}

	verifier := services.NewTokenVerifier(cfg)
	reviewService := services.NewReviewService(reviewStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(provider, cfg.SessionCookie)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	sessionAuth := middleware.SessionAuth(cfg.SessionCookie, verifier)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/confirm_signup", authHandler.ConfirmSignup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/signout", authHandler.Signout)
	}

	// Review routes. Reads are public; writes sit behind the session authorizer.
	movies := router.Group("/movies")
	{
		movies.POST("/reviews", sessionAuth, reviewHandler.AddReview)
		movies.GET("/reviews/:reviewerName", reviewHandler.GetReviewsByReviewer)
		movies.GET("/:movieId/reviews", reviewHandler.GetMovieReviews)
		movies.GET("/:movieId/reviews/:reviewerName", reviewHandler.GetMovieReviewsByReviewer)
		movies.PUT("/:movieId/reviews/:reviewerName", sessionAuth, reviewHandler.UpdateReview)
	}

	logger.Info("Routes initialized successfully")
}
