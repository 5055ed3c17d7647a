package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/config"
	"github.com/lshigami/quizdesk/database"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

// fakeGrader returns scores keyed by question id and counts calls.
type fakeGrader struct {
	mu     sync.Mutex
	scores map[uint]float64
	err    error
	calls  int
}

func newFakeGrader(scores map[uint]float64) *fakeGrader {
	return &fakeGrader{scores: scores}
}

func (f *fakeGrader) Available() bool { return true }

func (f *fakeGrader) GradeAnswer(_ context.Context, req quiz.GradingRequest) (*quiz.GradingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	score, ok := f.scores[req.Question.ID]
	if !ok {
		return nil, errors.New("no scripted score")
	}
	return &quiz.GradingResult{
		Score:        score,
		MaxScore:     req.Question.MaxScore,
		Feedback:     "Solid answer",
		Strengths:    []string{"clear"},
		Improvements: []string{"add follow-up"},
	}, nil
}

func (f *fakeGrader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fixture wires every service against one in-memory database.
type fixture struct {
	db          *gorm.DB
	grader      *fakeGrader
	questions   QuestionService
	submissions TestSubmissionService
	retests     RetestService
	attempts    AttemptService
	reviews     AdminReviewService
	wrongAnswer WrongAnswerReviewService
}

func newFixture(t *testing.T, grader *fakeGrader) *fixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()

	questionRepo := repository.NewQuestionRepository(db)
	resultRepo := repository.NewTestResultRepository(db)
	subjectiveRepo := repository.NewSubjectiveAnswerRepository(db)
	retestRepo := repository.NewRetestAssignmentRepository(db)
	reviewRepo := repository.NewWrongAnswerReviewRepository(db)

	f := &fixture{db: db, grader: grader}
	f.questions = NewQuestionService(questionRepo)
	f.submissions = NewTestSubmissionService(resultRepo, subjectiveRepo, db)
	f.retests = NewRetestService(retestRepo, f.questions)
	var gemini GeminiLLMService
	if grader != nil {
		gemini = grader
	}
	f.attempts = NewAttemptService(cfg, f.questions, f.retests, f.submissions, gemini)
	f.reviews = NewAdminReviewService(subjectiveRepo, gemini)
	f.wrongAnswer = NewWrongAnswerReviewService(resultRepo, reviewRepo, f.questions)
	return f
}

func (f *fixture) objective(t *testing.T, category model.Category, maxScore int, correct ...int) model.Question {
	t.Helper()
	q := model.Question{
		Category:       category,
		Prompt:         "Pick the right procedure",
		Type:           model.QuestionTypeObjective,
		Options:        model.StringList{"first", "second", "third", "fourth"},
		CorrectAnswers: model.NewAnswerSet(correct...),
		MaxScore:       maxScore,
	}
	require.NoError(t, f.db.Create(&q).Error)
	return q
}

func (f *fixture) openEnded(t *testing.T, category model.Category, maxScore int) model.Question {
	t.Helper()
	q := model.Question{
		Category: category,
		Prompt:   "How would you coach a new shift lead?",
		Type:     model.QuestionTypeOpenEnded,
		Rubric:   strPtr("Mentions expectations, feedback and follow-up"),
		MaxScore: maxScore,
	}
	require.NoError(t, f.db.Create(&q).Error)
	return q
}

func testConfig() *config.Config {
	return &config.Config{Quiz: config.Quiz{RandomSampleSize: 5, SessionIdleTTL: time.Hour}}
}
