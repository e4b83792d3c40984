package practice

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tevfikefeaydin/StudyForge/internal/gamification"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/retrieval"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/storage/mocks"
)

type stubRetriever struct {
	material *retrieval.Context
	err      error
}

func (s *stubRetriever) Retrieve(_ context.Context, _, _, _ string, _ retrieval.Options) (*retrieval.Context, error) {
	return s.material, s.err
}

type stubEngine struct {
	result *gamification.Result
	err    error

	gotAttempt  *storage.Attempt
	gotAnswer   string
	gotFeedback string
	gotCorrect  bool
	gotScore    float64
	gotTimeMs   int
}

func (s *stubEngine) RecordAttempt(_ context.Context, attempt *storage.Attempt, userAnswer, feedback string, correct bool, score float64, timeMs int) (*gamification.Result, error) {
	s.gotAttempt = attempt
	s.gotAnswer = userAnswer
	s.gotFeedback = feedback
	s.gotCorrect = correct
	s.gotScore = score
	s.gotTimeMs = timeMs
	return s.result, s.err
}

type serviceFixture struct {
	courses   *mocks.MockCourseStore
	sections  *mocks.MockSectionStore
	chunks    *mocks.MockChunkStore
	attempts  *mocks.MockAttemptStore
	retriever *stubRetriever
	engine    *stubEngine
	svc       *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	unconfigured := llm.NewClient("", "", "m")
	f := &serviceFixture{
		courses:   mocks.NewMockCourseStore(ctrl),
		sections:  mocks.NewMockSectionStore(ctrl),
		chunks:    mocks.NewMockChunkStore(ctrl),
		attempts:  mocks.NewMockAttemptStore(ctrl),
		retriever: &stubRetriever{material: sampleMaterial()},
		engine:    &stubEngine{result: &gamification.Result{XPEarned: 15, Streak: 1, Mastery: 50}},
	}
	f.svc = NewService(
		f.courses, f.sections, f.chunks, f.attempts,
		f.retriever, fixedGenerator(unconfigured), NewGrader(unconfigured), f.engine,
	)
	return f
}

func ownedCourse() *storage.Course {
	return &storage.Course{ID: "c1", UserID: "u1", Title: "Biology"}
}

func TestServiceGenerate_CreatesPendingAttempt(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.courses.EXPECT().GetByID(ctx, "c1").Return(ownedCourse(), nil)
	f.sections.EXPECT().GetByID(ctx, "s1").
		Return(&storage.Section{ID: "s1", CourseID: "c1", Title: "Photosynthesis"}, nil)
	f.attempts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, attempt *storage.Attempt) error {
			attempt.ID = "a1"
			if attempt.UserID != "u1" || attempt.SectionID != "s1" || attempt.Mode != ModeQuiz {
				t.Errorf("attempt = %+v, want pending quiz attempt for u1/s1", attempt)
			}
			if attempt.ChunkIDs != `["t1"]` {
				t.Errorf("ChunkIDs = %q, want the stub's source chunk", attempt.ChunkIDs)
			}
			if attempt.Correct != nil {
				t.Error("attempt already graded at creation")
			}
			return nil
		})

	got, err := f.svc.Generate(ctx, GenerateRequest{
		UserID: "u1", CourseID: "c1", SectionID: "s1", Mode: ModeQuiz, Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.AttemptID != "a1" || got.Question == nil {
		t.Errorf("result = %+v, want attempt id and question", got)
	}
}

func TestServiceGenerate_ForeignCourse(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.courses.EXPECT().GetByID(ctx, "c1").
		Return(&storage.Course{ID: "c1", UserID: "someone-else"}, nil)

	_, err := f.svc.Generate(ctx, GenerateRequest{UserID: "u1", CourseID: "c1", Mode: ModeQuiz})
	if !errors.Is(err, storage.ErrNotOwner) {
		t.Errorf("Generate() error = %v, want ErrNotOwner", err)
	}
}

func TestServiceGenerate_SectionOutsideCourse(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.courses.EXPECT().GetByID(ctx, "c1").Return(ownedCourse(), nil)
	f.sections.EXPECT().GetByID(ctx, "s9").
		Return(&storage.Section{ID: "s9", CourseID: "other-course"}, nil)

	_, err := f.svc.Generate(ctx, GenerateRequest{
		UserID: "u1", CourseID: "c1", SectionID: "s9", Mode: ModeQuiz,
	})
	if !errors.Is(err, storage.ErrNotOwner) {
		t.Errorf("Generate() error = %v, want ErrNotOwner", err)
	}
}

func TestServiceGenerate_UnknownSection(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.courses.EXPECT().GetByID(ctx, "c1").Return(ownedCourse(), nil)
	f.sections.EXPECT().GetByID(ctx, "").Return(nil, storage.ErrNotFound)

	_, err := f.svc.Generate(ctx, GenerateRequest{UserID: "u1", CourseID: "c1", Mode: ModeQuiz})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Generate() error = %v, want ErrNotFound without a section", err)
	}
}

func TestServiceGenerate_InsufficientSkipsAttempt(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.retriever.material = &retrieval.Context{}

	f.courses.EXPECT().GetByID(ctx, "c1").Return(ownedCourse(), nil)
	f.sections.EXPECT().GetByID(ctx, "s1").
		Return(&storage.Section{ID: "s1", CourseID: "c1", Title: "Photosynthesis"}, nil)
	// No attempts.Create expectation: nothing gradeable is persisted.

	got, err := f.svc.Generate(ctx, GenerateRequest{UserID: "u1", CourseID: "c1", SectionID: "s1", Mode: ModeQuiz})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.AttemptID != "" || !got.Question.Insufficient {
		t.Errorf("result = %+v, want insufficient question with no attempt", got)
	}
}

func TestServiceGrade_MCQ(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	attempt := &storage.Attempt{
		ID: "a1", UserID: "u1", CourseID: "c1", SectionID: "s1",
		Mode: ModeQuiz, Difficulty: "medium",
		Question:       "What does chlorophyll absorb?",
		ExpectedAnswer: "B) Red and blue light",
		Options:        `["A) Green","B) Red and blue light","C) Infrared","D) UV"]`,
		ChunkIDs:       `["t2"]`,
	}
	f.attempts.EXPECT().GetByID(ctx, "a1").Return(attempt, nil)

	got, err := f.svc.Grade(ctx, GradeRequest{
		UserID: "u1", AttemptID: "a1", Answer: "B", TimeMs: 4000,
	})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if got.XPEarned != 15 {
		t.Errorf("XPEarned = %d, want engine result passed through", got.XPEarned)
	}
	if !f.engine.gotCorrect || f.engine.gotScore != 1 || f.engine.gotTimeMs != 4000 {
		t.Errorf("engine saw correct=%v score=%v timeMs=%d, want graded MCQ outcome",
			f.engine.gotCorrect, f.engine.gotScore, f.engine.gotTimeMs)
	}
}

func TestServiceGrade_Flashcard(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	attempt := &storage.Attempt{
		ID: "a1", UserID: "u1", SectionID: "s1",
		Mode: ModeFlashcard, ExpectedAnswer: "the back of the card",
		Options: "[]", ChunkIDs: "[]",
	}
	f.attempts.EXPECT().GetByID(ctx, "a1").Return(attempt, nil)

	if _, err := f.svc.Grade(ctx, GradeRequest{UserID: "u1", AttemptID: "a1", Quality: 2}); err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if f.engine.gotCorrect || f.engine.gotScore != 0.4 {
		t.Errorf("engine saw correct=%v score=%v, want failed recall at quality 2",
			f.engine.gotCorrect, f.engine.gotScore)
	}
}

func TestServiceGrade_ShortAnswerHydratesChunks(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	attempt := &storage.Attempt{
		ID: "a1", UserID: "u1", SectionID: "s1",
		Mode: ModeQuiz, Question: "Explain photosynthesis.",
		ExpectedAnswer: "photosynthesis converts light energy",
		Options:        "[]", ChunkIDs: `["t1","gone"]`,
	}
	f.attempts.EXPECT().GetByID(ctx, "a1").Return(attempt, nil)
	f.chunks.EXPECT().GetByID(ctx, "t1").
		Return(&storage.ChunkRecord{ID: "t1", Content: "source text"}, nil)
	f.chunks.EXPECT().GetByID(ctx, "gone").Return(nil, storage.ErrNotFound)

	if _, err := f.svc.Grade(ctx, GradeRequest{UserID: "u1", AttemptID: "a1", Answer: "it converts light"}); err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !f.engine.gotCorrect || f.engine.gotScore != 1 {
		t.Errorf("engine saw correct=%v score=%v, want keyword-overlap pass",
			f.engine.gotCorrect, f.engine.gotScore)
	}
}

func TestServiceGrade_ForeignAttempt(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.attempts.EXPECT().GetByID(ctx, "a1").
		Return(&storage.Attempt{ID: "a1", UserID: "someone-else"}, nil)

	_, err := f.svc.Grade(ctx, GradeRequest{UserID: "u1", AttemptID: "a1"})
	if !errors.Is(err, storage.ErrNotOwner) {
		t.Errorf("Grade() error = %v, want ErrNotOwner", err)
	}
}

func TestServiceGrade_AlreadyGradedPropagates(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.engine.result = nil
	f.engine.err = storage.ErrAlreadyGraded

	attempt := &storage.Attempt{
		ID: "a1", UserID: "u1", SectionID: "s1", Mode: ModeFlashcard,
		Options: "[]", ChunkIDs: "[]",
	}
	f.attempts.EXPECT().GetByID(ctx, "a1").Return(attempt, nil)

	_, err := f.svc.Grade(ctx, GradeRequest{UserID: "u1", AttemptID: "a1", Quality: 4})
	if !errors.Is(err, storage.ErrAlreadyGraded) {
		t.Errorf("Grade() error = %v, want ErrAlreadyGraded", err)
	}
}
