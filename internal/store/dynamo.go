package store

import (
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"movie-reviews-backend/internal/config"
)

var (
	defaultOnce  sync.Once
	defaultStore *ReviewStore
)

// Default returns the process-wide review store, constructing the DynamoDB
// client on first use. The client is safe for concurrent use and is reused
// across requests.
func Default(cfg *config.Config) *ReviewStore {
	defaultOnce.Do(func() {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			Config:            aws.Config{Region: aws.String(cfg.AWSRegion)},
			SharedConfigState: session.SharedConfigEnable,
		}))

		defaultStore = NewReviewStore(dynamodb.New(sess), cfg.ReviewsTableName, cfg.ReviewerIndexName, cfg.StoreTimeout)
	})
	return defaultStore
}
