package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// ReviewScheduler applies spaced-repetition ratings to review items.
type ReviewScheduler interface {
	RateReview(ctx context.Context, item *storage.ReviewItem, quality int) (*storage.ReviewItem, error)
}

// ReviewItemResponse represents a review queue item in API responses.
type ReviewItemResponse struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	IntervalDays int       `json:"intervalDays"`
	EaseFactor   float64   `json:"easeFactor"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"nextReviewAt"`
}

func reviewItemResponse(item *storage.ReviewItem) *ReviewItemResponse {
	return &ReviewItemResponse{
		ID:           item.ID,
		Question:     item.Question,
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
		NextReviewAt: item.NextReviewAt,
	}
}

// ReviewNextHandler surfaces the next due review item, one at a time.
type ReviewNextHandler struct {
	reviews  storage.ReviewStore
	attempts storage.AttemptStore
}

// NewReviewNextHandler creates a new ReviewNextHandler.
func NewReviewNextHandler(reviews storage.ReviewStore, attempts storage.AttemptStore) *ReviewNextHandler {
	return &ReviewNextHandler{reviews: reviews, attempts: attempts}
}

// ServeHTTP returns the earliest due review item, or {"item": null} when
// nothing is due. Items whose source attempt has vanished are deleted and
// skipped.
func (h *ReviewNextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	for {
		item, err := h.reviews.NextDue(ctx, userID, now)
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"item": nil})
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to load due review item", "error", err)
			writeServiceError(w, err)
			return
		}

		if _, err := h.attempts.GetByID(ctx, item.AttemptID); errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "deleting orphaned review item",
				"item_id", item.ID, "attempt_id", item.AttemptID)
			if err := h.reviews.Delete(ctx, item.ID); err != nil {
				writeServiceError(w, err)
				return
			}
			continue
		} else if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"item": reviewItemResponse(item)})
		return
	}
}

// ReviewRateHandler applies a recall rating to a review item.
type ReviewRateHandler struct {
	reviews   storage.ReviewStore
	scheduler ReviewScheduler
}

// NewReviewRateHandler creates a new ReviewRateHandler.
func NewReviewRateHandler(reviews storage.ReviewStore, scheduler ReviewScheduler) *ReviewRateHandler {
	return &ReviewRateHandler{reviews: reviews, scheduler: scheduler}
}

// RateReviewRequest represents the payload for rating a review item.
type RateReviewRequest struct {
	ReviewID string `json:"reviewId"`
	Quality  int    `json:"quality"`
}

// ServeHTTP applies one recall rating and returns the updated schedule.
func (h *ReviewRateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ReviewID == "" {
		writeError(w, http.StatusBadRequest, "reviewId is required")
		return
	}
	if req.Quality < 0 || req.Quality > 5 {
		writeError(w, http.StatusBadRequest, "quality must be between 0 and 5")
		return
	}

	item, err := h.reviews.GetByID(ctx, req.ReviewID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item.UserID != userID {
		writeServiceError(w, storage.ErrNotOwner)
		return
	}

	updated, err := h.scheduler.RateReview(ctx, item, req.Quality)
	if err != nil {
		logger.ErrorContext(ctx, "failed to rate review item", "item_id", item.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"item": reviewItemResponse(updated)})
}
