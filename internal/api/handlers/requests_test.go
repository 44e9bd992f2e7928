package handlers

import (
	"testing"

	"movie-reviews-backend/internal/types"
)

func TestParseByMovie(t *testing.T) {
	req, err := parseByMovie("100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MovieID != 100 {
		t.Errorf("expected 100, got %d", req.MovieID)
	}

	if _, err := parseByMovie(""); !types.IsValidation(err) {
		t.Errorf("expected ValidationError for empty id, got %v", err)
	}
	if _, err := parseByMovie("abc"); !types.IsValidation(err) {
		t.Errorf("expected ValidationError for non-numeric id, got %v", err)
	}
}

func TestParseByMovieAndReviewer(t *testing.T) {
	req, err := parseByMovieAndReviewer("100", "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.MovieID != 100 || req.ReviewerName != "alice" {
		t.Errorf("unexpected request %+v", req)
	}

	if _, err := parseByMovieAndReviewer("abc", "alice"); !types.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if _, err := parseByMovieAndReviewer("100", "  "); !types.IsValidation(err) {
		t.Errorf("expected ValidationError for blank reviewer, got %v", err)
	}
}

func TestParseByReviewer(t *testing.T) {
	if _, err := parseByReviewer(""); !types.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	req, err := parseByReviewer("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ReviewerName != "alice" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestParseUpdateKeyMatching(t *testing.T) {
	movieID := 100
	reviewer := "alice"
	rating := 8

	key, patch, err := parseUpdate("100", "alice", updateBody{MovieID: &movieID, ReviewerName: &reviewer, Rating: &rating})
	if err != nil {
		t.Fatalf("matching keys should pass: %v", err)
	}
	if key.MovieID != 100 || key.ReviewerName != "alice" {
		t.Errorf("unexpected key %+v", key)
	}
	if patch.Rating == nil || *patch.Rating != 8 || patch.Content != nil {
		t.Errorf("unexpected patch %+v", patch)
	}

	wrongMovie := 999
	if _, _, err := parseUpdate("100", "alice", updateBody{MovieID: &wrongMovie}); !types.IsValidation(err) {
		t.Errorf("expected ValidationError on movie mismatch, got %v", err)
	}

	wrongReviewer := "bob"
	if _, _, err := parseUpdate("100", "alice", updateBody{ReviewerName: &wrongReviewer}); !types.IsValidation(err) {
		t.Errorf("expected ValidationError on reviewer mismatch, got %v", err)
	}
}
