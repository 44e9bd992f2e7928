package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"movie-reviews-backend/internal/config"
	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/store"
	"movie-reviews-backend/pkg/logger"
)

// seedReviews is the initial data set loaded into a fresh table.
var seedReviews = []models.Review{
	{
		MovieID:      848326,
		ReviewerName: "msbreviews",
		Rating:       7,
		Content:      "A good attempt to see how close one can get to Star Wars without getting sued. Better than Star Wars movies of late. Great Dark Souls spider boss fight. Everything kind of blends together after spider boss. A nice way to spend an hour before getting up, wandering around, passively experiencing explosions and plot details.",
		ReviewDate:   "2023-12-24",
	},
	{
		MovieID:      572802,
		ReviewerName: "justhappytobehere",
		Rating:       4,
		Content:      "Not clear who this movie was made for. There is something particularly obnoxious about these super hero movies that strut around with such confidence while being so incredibly stupid and intellectually bankrupt.",
		ReviewDate:   "2024-01-26",
	},
	{
		MovieID:      695721,
		ReviewerName: "austinmgray",
		Rating:       8,
		Content:      "one of the best installments to the Hunger Games series. it's definitely the darkest and most political entry to the saga. excellent casting, excellent music, and deliciously evil performances.",
		ReviewDate:   "2023-11-25",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.Init()
	cfg := config.Load()

	reviewStore := store.Default(cfg)
	ctx := context.Background()

	for _, review := range seedReviews {
		if _, err := reviewStore.Create(ctx, review); err != nil {
			logger.Fatal("Failed to seed review: ", err)
		}
		logger.Info("Seeded review for movie ", review.MovieID, " by ", review.ReviewerName)
	}

	logger.Info("Seeding complete: ", len(seedReviews), " reviews")
}
