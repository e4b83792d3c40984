package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/storage/mocks"
)

type stubScheduler struct {
	updated *storage.ReviewItem
	err     error

	gotItem    *storage.ReviewItem
	gotQuality int
}

func (s *stubScheduler) RateReview(_ context.Context, item *storage.ReviewItem, quality int) (*storage.ReviewItem, error) {
	s.gotItem = item
	s.gotQuality = quality
	return s.updated, s.err
}

func dueItem() *storage.ReviewItem {
	return &storage.ReviewItem{
		ID:             "r1",
		UserID:         "u1",
		CourseID:       "c1",
		AttemptID:      "a1",
		Question:       "What does WAL stand for?",
		ExpectedAnswer: "Write-ahead logging",
		IntervalDays:   1,
		EaseFactor:     2.5,
		Repetitions:    1,
		NextReviewAt:   time.Now().UTC().Add(-time.Hour),
	}
}

func TestReviewNextHandler_ReturnsDueItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	item := dueItem()
	mockReviews := mocks.NewMockReviewStore(ctrl)
	mockAttempts := mocks.NewMockAttemptStore(ctrl)
	mockReviews.EXPECT().NextDue(gomock.Any(), "u1", gomock.Any()).Return(item, nil)
	mockAttempts.EXPECT().GetByID(gomock.Any(), "a1").Return(&storage.Attempt{ID: "a1"}, nil)

	handler := NewReviewNextHandler(mockReviews, mockAttempts)

	req := httptest.NewRequest(http.MethodGet, "/api/review/next", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Item *ReviewItemResponse `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Item == nil {
		t.Fatal("expected an item, got null")
	}
	if resp.Item.ID != "r1" || resp.Item.Question != "What does WAL stand for?" {
		t.Errorf("unexpected item: %+v", resp.Item)
	}
}

func TestReviewNextHandler_NothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReviews := mocks.NewMockReviewStore(ctrl)
	mockReviews.EXPECT().NextDue(gomock.Any(), "u1", gomock.Any()).Return(nil, storage.ErrNotFound)

	handler := NewReviewNextHandler(mockReviews, mocks.NewMockAttemptStore(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/review/next", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Item *ReviewItemResponse `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Item != nil {
		t.Errorf("expected null item, got %+v", resp.Item)
	}
}

func TestReviewNextHandler_SkipsOrphanedItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orphan := dueItem()
	orphan.ID = "r-orphan"
	orphan.AttemptID = "a-gone"
	healthy := dueItem()

	mockReviews := mocks.NewMockReviewStore(ctrl)
	mockAttempts := mocks.NewMockAttemptStore(ctrl)

	gomock.InOrder(
		mockReviews.EXPECT().NextDue(gomock.Any(), "u1", gomock.Any()).Return(orphan, nil),
		mockAttempts.EXPECT().GetByID(gomock.Any(), "a-gone").Return(nil, storage.ErrNotFound),
		mockReviews.EXPECT().Delete(gomock.Any(), "r-orphan").Return(nil),
		mockReviews.EXPECT().NextDue(gomock.Any(), "u1", gomock.Any()).Return(healthy, nil),
		mockAttempts.EXPECT().GetByID(gomock.Any(), "a1").Return(&storage.Attempt{ID: "a1"}, nil),
	)

	handler := NewReviewNextHandler(mockReviews, mockAttempts)

	req := httptest.NewRequest(http.MethodGet, "/api/review/next", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Item *ReviewItemResponse `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Item == nil || resp.Item.ID != "r1" {
		t.Errorf("expected healthy item r1, got %+v", resp.Item)
	}
}

func TestReviewRateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	item := dueItem()
	updated := dueItem()
	updated.IntervalDays = 6
	updated.Repetitions = 2
	updated.NextReviewAt = time.Now().UTC().Add(6 * 24 * time.Hour)

	mockReviews := mocks.NewMockReviewStore(ctrl)
	mockReviews.EXPECT().GetByID(gomock.Any(), "r1").Return(item, nil)

	scheduler := &stubScheduler{updated: updated}
	handler := NewReviewRateHandler(mockReviews, scheduler)

	body, _ := json.Marshal(RateReviewRequest{ReviewID: "r1", Quality: 4})
	req := httptest.NewRequest(http.MethodPost, "/api/review/rate", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if scheduler.gotQuality != 4 {
		t.Errorf("expected quality 4 passed to scheduler, got %d", scheduler.gotQuality)
	}

	var resp struct {
		Item *ReviewItemResponse `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Item.IntervalDays != 6 || resp.Item.Repetitions != 2 {
		t.Errorf("expected updated schedule, got %+v", resp.Item)
	}
}

func TestReviewRateHandler_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewReviewRateHandler(mocks.NewMockReviewStore(ctrl), &stubScheduler{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing review id", body: `{"quality":4}`},
		{name: "quality too low", body: `{"reviewId":"r1","quality":-1}`},
		{name: "quality too high", body: `{"reviewId":"r1","quality":6}`},
		{name: "invalid json", body: `{"reviewId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/review/rate", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("X-User-ID", "u1")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestReviewRateHandler_ForeignItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	item := dueItem()
	item.UserID = "someone-else"

	mockReviews := mocks.NewMockReviewStore(ctrl)
	mockReviews.EXPECT().GetByID(gomock.Any(), "r1").Return(item, nil)

	handler := NewReviewRateHandler(mockReviews, &stubScheduler{})

	body := []byte(`{"reviewId":"r1","quality":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/review/rate", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}
}
