package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) pendingAnswer(t *testing.T, question model.Question) model.SubjectiveAnswer {
	t.Helper()
	answer := model.SubjectiveAnswer{
		QuestionID: question.ID,
		UserID:     uuid.New(),
		AnswerText: strPtr("Lock the cash office before counting"),
		Status:     model.SubjectiveStatusPending,
	}
	require.NoError(t, f.db.Create(&answer).Error)
	return answer
}

func scorePtr(v float64) *float64 { return &v }

func TestAdminReview_GradeThenApprove(t *testing.T) {
	grader := newFakeGrader(nil)
	f := newFixture(t, grader)
	question := f.openEnded(t, model.CategorySafety, 20)
	grader.scores = map[uint]float64{question.ID: 14}
	answer := f.pendingAnswer(t, question)

	queue, err := f.reviews.PendingQueue()
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, question.Prompt, queue[0].QuestionPrompt)
	assert.Equal(t, 20, queue[0].MaxScore)

	graded, err := f.reviews.GradePending(context.Background(), answer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubjectiveStatusAIGraded, graded.Status)
	require.NotNil(t, graded.AIScore)
	assert.Equal(t, 14.0, *graded.AIScore)
	assert.NotNil(t, graded.AIGradedAt)

	_, err = f.reviews.GradePending(context.Background(), answer.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	admin := uuid.New()
	approved, err := f.reviews.Approve(answer.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, model.SubjectiveStatusAdminReviewed, approved.Status)
	require.NotNil(t, approved.FinalScore)
	assert.Equal(t, 14.0, *approved.FinalScore)
	require.NotNil(t, approved.AdminFeedback)
	assert.Equal(t, model.ApprovedFeedback, *approved.AdminFeedback)
	require.NotNil(t, approved.AdminReviewerID)
	assert.Equal(t, admin, *approved.AdminReviewerID)

	queue, err = f.reviews.PendingQueue()
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestAdminReview_StatusNeverMovesBackwards(t *testing.T) {
	f := newFixture(t, newFakeGrader(nil))
	question := f.openEnded(t, model.CategoryLeadership, 10)
	answer := f.pendingAnswer(t, question)

	_, err := f.reviews.Approve(answer.ID, uuid.New())
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ai_score", validationErr.Field)

	_, err = f.reviews.Override(answer.ID, dto.OverrideRequest{AdminID: uuid.New(), Score: scorePtr(7)})
	require.NoError(t, err)

	_, err = f.reviews.Override(answer.ID, dto.OverrideRequest{AdminID: uuid.New(), Score: scorePtr(2)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.reviews.Approve(answer.ID, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.reviews.GradePending(context.Background(), answer.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var stored model.SubjectiveAnswer
	require.NoError(t, f.db.First(&stored, answer.ID).Error)
	assert.Equal(t, model.SubjectiveStatusAdminReviewed, stored.Status)
	require.NotNil(t, stored.FinalScore)
	assert.Equal(t, 7.0, *stored.FinalScore)
}

func TestAdminReview_OverrideValidatesRange(t *testing.T) {
	f := newFixture(t, nil)
	question := f.openEnded(t, model.CategoryOperations, 20)
	answer := f.pendingAnswer(t, question)

	for _, score := range []float64{-1, -0.5, 20.5, 100} {
		_, err := f.reviews.Override(answer.ID, dto.OverrideRequest{AdminID: uuid.New(), Score: scorePtr(score)})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr, "score %v", score)
	}

	var stored model.SubjectiveAnswer
	require.NoError(t, f.db.First(&stored, answer.ID).Error)
	assert.Equal(t, model.SubjectiveStatusPending, stored.Status)
	assert.Nil(t, stored.FinalScore)
	assert.Nil(t, stored.AdminScore)

	resp, err := f.reviews.Override(answer.ID, dto.OverrideRequest{AdminID: uuid.New(), Score: scorePtr(0)})
	require.NoError(t, err)
	require.NotNil(t, resp.FinalScore)
	assert.Equal(t, 0.0, *resp.FinalScore)
	assert.Nil(t, resp.AdminFeedback)
}

func TestAdminReview_OverrideFromPendingAtMax(t *testing.T) {
	f := newFixture(t, nil)
	question := f.openEnded(t, model.CategoryOperations, 20)
	answer := f.pendingAnswer(t, question)

	resp, err := f.reviews.Override(answer.ID, dto.OverrideRequest{AdminID: uuid.New(), Score: scorePtr(20), Feedback: strPtr("excellent")})
	require.NoError(t, err)
	require.NotNil(t, resp.AdminScore)
	assert.Equal(t, 20.0, *resp.AdminScore)
	require.NotNil(t, resp.AdminFeedback)
	assert.Equal(t, "excellent", *resp.AdminFeedback)
	assert.Nil(t, resp.AIScore)
	assert.Equal(t, model.SubjectiveStatusAdminReviewed, resp.Status)
}

func TestAdminReview_GradingFailureKeepsPending(t *testing.T) {
	grader := newFakeGrader(nil)
	grader.err = errors.New("provider timeout")
	f := newFixture(t, grader)
	answer := f.pendingAnswer(t, f.openEnded(t, model.CategorySafety, 10))

	_, err := f.reviews.GradePending(context.Background(), answer.ID)
	require.Error(t, err)

	var stored model.SubjectiveAnswer
	require.NoError(t, f.db.First(&stored, answer.ID).Error)
	assert.Equal(t, model.SubjectiveStatusPending, stored.Status)
	assert.Nil(t, stored.AIScore)
}

func TestAdminReview_GradeWithoutGrader(t *testing.T) {
	f := newFixture(t, nil)
	answer := f.pendingAnswer(t, f.openEnded(t, model.CategorySafety, 10))
	_, err := f.reviews.GradePending(context.Background(), answer.ID)
	assert.ErrorIs(t, err, quiz.ErrGraderUnavailable)

	_, err = f.reviews.GradePending(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
