package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) storedResult(t *testing.T, user uuid.UUID, category model.Category) model.TestResult {
	t.Helper()
	result := model.TestResult{
		UserID:       user,
		Category:     category,
		Score:        67,
		CorrectCount: 2,
		TotalCount:   3,
		TestDate:     time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, f.db.Create(&result).Error)
	return result
}

func TestWrongAnswerReview_ScopeIsObjectiveOnly(t *testing.T) {
	f := newFixture(t, nil)
	user := uuid.New()
	q1 := f.objective(t, model.CategoryPolicy, 10, 1)
	f.openEnded(t, model.CategoryPolicy, 20)
	q3 := f.objective(t, model.CategoryPolicy, 10, 0, 2)
	f.objective(t, model.CategorySafety, 10, 0)
	result := f.storedResult(t, user, model.CategoryPolicy)

	page, err := f.wrongAnswer.ReviewQuestions(result.ID, user, nil)
	require.NoError(t, err)
	require.Len(t, page.Questions, 2)
	assert.Equal(t, q1.ID, page.Questions[0].ID)
	assert.Equal(t, []int{0, 2}, page.Questions[1].CorrectAnswers)
	assert.Equal(t, result.ID, page.Result.ID)

	page, err = f.wrongAnswer.ReviewQuestions(result.ID, user, []uint{q3.ID})
	require.NoError(t, err)
	require.Len(t, page.Questions, 1)
	assert.Equal(t, q3.ID, page.Questions[0].ID)
}

func TestWrongAnswerReview_UnknownOrForeignResultIsNotFound(t *testing.T) {
	f := newFixture(t, nil)
	result := f.storedResult(t, uuid.New(), model.CategoryPolicy)

	_, err := f.wrongAnswer.ReviewQuestions(result.ID, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.wrongAnswer.ReviewQuestions(9999, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.wrongAnswer.SubmitReview(9999, dto.SubmitReviewRequest{UserID: uuid.New(), Answers: []dto.ReviewAnswerItem{{QuestionID: 1}}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWrongAnswerReview_NeverMutatesResult(t *testing.T) {
	f := newFixture(t, nil)
	user := uuid.New()
	q1 := f.objective(t, model.CategoryOperations, 10, 1, 3)
	q2 := f.objective(t, model.CategoryOperations, 10, 0)
	open := f.openEnded(t, model.CategoryOperations, 20)
	result := f.storedResult(t, user, model.CategoryOperations)

	var before model.TestResult
	require.NoError(t, f.db.First(&before, result.ID).Error)

	for attempt := 0; attempt < 3; attempt++ {
		resp, err := f.wrongAnswer.SubmitReview(result.ID, dto.SubmitReviewRequest{
			UserID: user,
			Answers: []dto.ReviewAnswerItem{
				{QuestionID: q1.ID, Selected: model.AnswerSet{3, 1}},
				{QuestionID: q2.ID, Selected: model.AnswerSet{2}},
				{QuestionID: open.ID, Selected: model.AnswerSet{0}},
			},
		})
		require.NoError(t, err)
		assert.True(t, resp.Saved)
		require.Len(t, resp.Reviews, 2)
		assert.Equal(t, 1, resp.CorrectCount)
		assert.True(t, resp.Reviews[0].IsCorrectOnReview)
		assert.False(t, resp.Reviews[1].IsCorrectOnReview)
	}

	var after model.TestResult
	require.NoError(t, f.db.First(&after, result.ID).Error)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.CorrectCount, after.CorrectCount)
	assert.Equal(t, before.TotalCount, after.TotalCount)
	assert.True(t, before.TestDate.Equal(after.TestDate))

	history, err := f.wrongAnswer.ListReviews(result.ID, user)
	require.NoError(t, err)
	assert.Len(t, history, 6)
}

func TestWrongAnswerReview_RejectsOpenEndedOnly(t *testing.T) {
	f := newFixture(t, nil)
	user := uuid.New()
	open := f.openEnded(t, model.CategoryLeadership, 20)
	result := f.storedResult(t, user, model.CategoryLeadership)

	_, err := f.wrongAnswer.SubmitReview(result.ID, dto.SubmitReviewRequest{
		UserID:  user,
		Answers: []dto.ReviewAnswerItem{{QuestionID: open.ID, Selected: model.AnswerSet{0}}},
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestWrongAnswerReview_RejectsOutOfRangeOrForeignSelections(t *testing.T) {
	f := newFixture(t, nil)
	user := uuid.New()
	q := f.objective(t, model.CategoryPolicy, 10, 1)
	foreign := f.objective(t, model.CategorySafety, 10, 0)
	result := f.storedResult(t, user, model.CategoryPolicy)

	tests := []struct {
		name   string
		answer dto.ReviewAnswerItem
	}{
		{"negative index", dto.ReviewAnswerItem{QuestionID: q.ID, Selected: model.AnswerSet{-1}}},
		{"index past last option", dto.ReviewAnswerItem{QuestionID: q.ID, Selected: model.AnswerSet{1, 4}}},
		{"question of another category", dto.ReviewAnswerItem{QuestionID: foreign.ID, Selected: model.AnswerSet{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.wrongAnswer.SubmitReview(result.ID, dto.SubmitReviewRequest{UserID: user, Answers: []dto.ReviewAnswerItem{tt.answer}})
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	history, err := f.wrongAnswer.ListReviews(result.ID, user)
	require.NoError(t, err)
	assert.Empty(t, history)

	page, err := f.wrongAnswer.ReviewQuestions(result.ID, user, []uint{foreign.ID, q.ID})
	require.NoError(t, err)
	require.Len(t, page.Questions, 1)
	assert.Equal(t, q.ID, page.Questions[0].ID)
}
