package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/types"
)

// ReviewStore translates API-level requests into key-value operations against
// the reviews table, keyed by (MovieId, ReviewerName).
type ReviewStore struct {
	client    dynamodbiface.DynamoDBAPI
	tableName string
	indexName string
	timeout   time.Duration
}

func NewReviewStore(client dynamodbiface.DynamoDBAPI, tableName, indexName string, timeout time.Duration) *ReviewStore {
	return &ReviewStore{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		timeout:   timeout,
	}
}

// GetByMovie returns every review in the movie's partition. An empty result
// is a valid outcome here; the handler layer decides how to surface it.
func (s *ReviewStore) GetByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("MovieId = :m"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":m": {N: aws.String(strconv.Itoa(movieID))},
		},
	})
	if err != nil {
		return nil, &types.StoreFault{Op: "query reviews by movie", Err: err}
	}

	return unmarshalReviews(out.Items)
}

// GetByMovieAndReviewer queries the movie's partition and filters on reviewer
// name. At most one item should come back given the key invariant, but the
// access pattern returns a list and callers treat more than one as anomalous.
func (s *ReviewStore) GetByMovieAndReviewer(ctx context.Context, movieID int, reviewerName string) ([]models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.client.QueryWithContext(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("MovieId = :m"),
		FilterExpression:       aws.String("ReviewerName = :rN"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":m":  {N: aws.String(strconv.Itoa(movieID))},
			":rN": {S: aws.String(reviewerName)},
		},
	})
	if err != nil {
		return nil, &types.StoreFault{Op: "query reviews by movie and reviewer", Err: err}
	}

	return unmarshalReviews(out.Items)
}

// GetByReviewer returns the reviewer's reviews across all movies. The table's
// primary key cannot serve this path, so it queries the ReviewerName GSI when
// one is configured and falls back to a filtered scan otherwise.
func (s *ReviewStore) GetByReviewer(ctx context.Context, reviewerName string) ([]models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if s.indexName != "" {
		out, err := s.client.QueryWithContext(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			IndexName:              aws.String(s.indexName),
			KeyConditionExpression: aws.String("ReviewerName = :rN"),
			ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
				":rN": {S: aws.String(reviewerName)},
			},
		})
		if err != nil {
			return nil, &types.StoreFault{Op: "query reviews by reviewer", Err: err}
		}
		return unmarshalReviews(out.Items)
	}

	out, err := s.client.ScanWithContext(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.tableName),
		FilterExpression: aws.String("ReviewerName = :rN"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":rN": {S: aws.String(reviewerName)},
		},
	})
	if err != nil {
		return nil, &types.StoreFault{Op: "scan reviews by reviewer", Err: err}
	}

	return unmarshalReviews(out.Items)
}

// Create writes the review unconditionally. A review already present at the
// same (MovieId, ReviewerName) key is silently overwritten; concurrent
// writers to the same key race with last-writer-wins semantics.
func (s *ReviewStore) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	item, err := dynamodbattribute.MarshalMap(review)
	if err != nil {
		return nil, &types.StoreFault{Op: "marshal review", Err: err}
	}

	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return nil, &types.StoreFault{Op: "put review", Err: err}
	}

	return &review, nil
}

// Update applies the patch fields present in the input to an existing review,
// leaving absent fields untouched. The key fields are immutable and a missing
// record fails with NotFoundError rather than upserting.
func (s *ReviewStore) Update(ctx context.Context, movieID int, reviewerName string, patch models.ReviewPatch) (*models.Review, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var sets []string
	names := map[string]*string{}
	values := map[string]*dynamodb.AttributeValue{}

	if patch.Rating != nil {
		sets = append(sets, "#r = :r")
		names["#r"] = aws.String("Rating")
		values[":r"] = &dynamodb.AttributeValue{N: aws.String(strconv.Itoa(*patch.Rating))}
	}
	if patch.Content != nil {
		sets = append(sets, "#c = :c")
		names["#c"] = aws.String("Content")
		values[":c"] = &dynamodb.AttributeValue{S: aws.String(*patch.Content)}
	}

	out, err := s.client.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]*dynamodb.AttributeValue{
			"MovieId":      {N: aws.String(strconv.Itoa(movieID))},
			"ReviewerName": {S: aws.String(reviewerName)},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(MovieId) AND attribute_exists(ReviewerName)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return nil, types.NewNotFoundError("no review found for movie %d by %s", movieID, reviewerName)
		}
		return nil, &types.StoreFault{Op: "update review", Err: err}
	}

	var updated models.Review
	if err := dynamodbattribute.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, &types.StoreFault{Op: "unmarshal updated review", Err: err}
	}

	return &updated, nil
}

func (s *ReviewStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func unmarshalReviews(items []map[string]*dynamodb.AttributeValue) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := dynamodbattribute.UnmarshalListOfMaps(items, &reviews); err != nil {
		return nil, &types.StoreFault{Op: "unmarshal reviews", Err: err}
	}
	return reviews, nil
}
