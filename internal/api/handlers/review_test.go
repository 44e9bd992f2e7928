package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/models"
	"movie-reviews-backend/internal/services"
	"movie-reviews-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore counts store calls so tests can assert that validation and
// authorization failures short-circuit before any store access.
type fakeStore struct {
	reviews []models.Review
	err     error

	calls     int
	lastPatch models.ReviewPatch
}

func (f *fakeStore) GetByMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	f.calls++
	return f.reviews, f.err
}

func (f *fakeStore) GetByMovieAndReviewer(ctx context.Context, movieID int, reviewerName string) ([]models.Review, error) {
	f.calls++
	return f.reviews, f.err
}

func (f *fakeStore) GetByReviewer(ctx context.Context, reviewerName string) ([]models.Review, error) {
	f.calls++
	return f.reviews, f.err
}

func (f *fakeStore) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &review, nil
}

func (f *fakeStore) Update(ctx context.Context, movieID int, reviewerName string, patch models.ReviewPatch) (*models.Review, error) {
	f.calls++
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	updated := models.Review{MovieID: movieID, ReviewerName: reviewerName, ReviewDate: "2024-01-01", Rating: 5, Content: "ok"}
	if patch.Rating != nil {
		updated.Rating = *patch.Rating
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	return &updated, nil
}

func newTestRouter(fake *fakeStore) *gin.Engine {
	handler := NewReviewHandler(services.NewReviewService(fake))

	r := gin.New()
	movies := r.Group("/movies")
	movies.POST("/reviews", handler.AddReview)
	movies.GET("/reviews/:reviewerName", handler.GetReviewsByReviewer)
	movies.GET("/:movieId/reviews", handler.GetMovieReviews)
	movies.GET("/:movieId/reviews/:reviewerName", handler.GetMovieReviewsByReviewer)
	movies.PUT("/:movieId/reviews/:reviewerName", handler.UpdateReview)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestGetMovieReviewsInvalidMovieID(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodGet, "/movies/abc/reviews", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if _, ok := decodeBody(t, w)["Message"]; !ok {
		t.Error("expected a Message body")
	}
	if fake.calls != 0 {
		t.Errorf("store should not be touched on a validation failure, got %d calls", fake.calls)
	}
}

func TestGetMovieReviewsEmptyResultIs404(t *testing.T) {
	fake := &fakeStore{reviews: []models.Review{}}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodGet, "/movies/100/reviews", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var body struct {
		Message string `json:"Message"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "No reviews found. Verify movie Id and try again." {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestGetMovieReviewsReturnsData(t *testing.T) {
	fake := &fakeStore{reviews: []models.Review{
		{MovieID: 100, ReviewerName: "alice", ReviewDate: "2024-01-01", Rating: 5, Content: "ok"},
	}}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodGet, "/movies/100/reviews", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data []models.Review `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ReviewerName != "alice" {
		t.Errorf("unexpected data %+v", body.Data)
	}
}

func TestGetReviewsByReviewerEmptyStoreIs404(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodGet, "/movies/reviews/nobody", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAddReviewMissingFields(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPost, "/movies/reviews", map[string]interface{}{
		"MovieId": 100,
		"Rating":  5,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("store should not be touched, got %d calls", fake.calls)
	}
}

func TestAddReviewOK(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPost, "/movies/reviews", models.Review{
		MovieID: 100, ReviewerName: "alice", ReviewDate: "2024-01-01", Rating: 5, Content: "ok",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.calls != 1 {
		t.Errorf("expected 1 store call, got %d", fake.calls)
	}

	var body struct {
		Data models.Review `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Data.MovieID != 100 || body.Data.ReviewerName != "alice" {
		t.Errorf("unexpected data %+v", body.Data)
	}
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPost, "/movies/reviews", models.Review{
		MovieID: 100, ReviewerName: "alice", ReviewDate: "2024-01-01", Rating: 11, Content: "ok",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("store should not be touched, got %d calls", fake.calls)
	}
}

func TestUpdateReviewKeyMismatch(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPut, "/movies/100/reviews/alice", map[string]interface{}{
		"MovieId": 999,
		"Rating":  3,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on key mismatch, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("store should not be touched, got %d calls", fake.calls)
	}
}

func TestUpdateReviewPartialPatch(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPut, "/movies/100/reviews/alice", map[string]interface{}{
		"Rating": 8,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if fake.lastPatch.Rating == nil || *fake.lastPatch.Rating != 8 {
		t.Errorf("expected rating patch 8, got %+v", fake.lastPatch)
	}
	if fake.lastPatch.Content != nil {
		t.Error("content should be absent from the patch")
	}
}

func TestUpdateReviewNotFound(t *testing.T) {
	fake := &fakeStore{err: types.NewNotFoundError("no review found for movie 100 by alice")}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPut, "/movies/100/reviews/alice", map[string]interface{}{
		"Rating": 8,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateReviewEmptyPatch(t *testing.T) {
	fake := &fakeStore{}
	r := newTestRouter(fake)

	w := doRequest(r, http.MethodPut, "/movies/100/reviews/alice", map[string]interface{}{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on empty patch, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("store should not be touched, got %d calls", fake.calls)
	}
}
