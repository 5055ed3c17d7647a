package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminReviewService moves subjective answers through
// pending -> ai_graded -> admin_reviewed. No operation moves a record backwards.
type AdminReviewService interface {
	PendingQueue() ([]dto.SubjectiveAnswerResponse, error)
	GradePending(ctx context.Context, answerID uint) (*dto.SubjectiveAnswerResponse, error)
	Approve(answerID uint, adminID uuid.UUID) (*dto.SubjectiveAnswerResponse, error)
	// Override sets the final score of a pending or ai_graded answer.
	Override(answerID uint, req dto.OverrideRequest) (*dto.SubjectiveAnswerResponse, error)
}

type adminReviewService struct {
	repo   repository.SubjectiveAnswerRepository
	grader GeminiLLMService
	now    func() time.Time
}

func NewAdminReviewService(repo repository.SubjectiveAnswerRepository, grader GeminiLLMService) AdminReviewService {
	return &adminReviewService{repo: repo, grader: grader, now: time.Now}
}

func (s *adminReviewService) PendingQueue() ([]dto.SubjectiveAnswerResponse, error) {
	answers, err := s.repo.FindReviewQueue()
	if err != nil {
		return nil, fmt.Errorf("failed to load review queue: %w", err)
	}
	return toSubjectiveAnswerResponses(answers), nil
}

func (s *adminReviewService) load(answerID uint) (*model.SubjectiveAnswer, error) {
	answer, err := s.repo.FindByID(answerID)
	if err != nil {
		return nil, lookupErr(err, "subjective answer", answerID)
	}
	return answer, nil
}

// transition applies updates guarded by from and returns the reloaded record.
func (s *adminReviewService) transition(answer *model.SubjectiveAnswer, from []model.SubjectiveStatus, updates map[string]any) (*dto.SubjectiveAnswerResponse, error) {
	changed, err := s.repo.Transition(answer.ID, from, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update subjective answer %d: %w", answer.ID, err)
	}
	if !changed {
		return nil, fmt.Errorf("subjective answer %d changed concurrently: %w", answer.ID, ErrInvalidTransition)
	}
	reloaded, err := s.load(answer.ID)
	if err != nil {
		return nil, err
	}
	resp := toSubjectiveAnswerResponse(reloaded)
	return &resp, nil
}

func (s *adminReviewService) GradePending(ctx context.Context, answerID uint) (*dto.SubjectiveAnswerResponse, error) {
	answer, err := s.load(answerID)
	if err != nil {
		return nil, err
	}
	if answer.Status != model.SubjectiveStatusPending {
		return nil, fmt.Errorf("subjective answer %d is %s: %w", answerID, answer.Status, ErrInvalidTransition)
	}
	if s.grader == nil || !s.grader.Available() {
		return nil, quiz.ErrGraderUnavailable
	}

	req := quiz.GradingRequest{Question: &answer.Question, UserID: answer.UserID}
	if answer.AnswerText != nil {
		req.AnswerText = *answer.AnswerText
	}
	if answer.ImageURL != nil {
		req.ImageURL = *answer.ImageURL
	}
	result, err := s.grader.GradeAnswer(ctx, req)
	if err != nil {
		log.Warn().Err(err).Uint("answerID", answerID).Msg("AI grading of pending answer failed")
		return nil, fmt.Errorf("AI grading failed: %w", err)
	}

	score := quiz.ClampScore(result.Score, answer.Question.MaxScore)
	return s.transition(answer, []model.SubjectiveStatus{model.SubjectiveStatusPending}, map[string]any{
		"ai_score":        score,
		"ai_feedback":     result.Feedback,
		"ai_strengths":    model.StringList(nonNil(result.Strengths)),
		"ai_improvements": model.StringList(nonNil(result.Improvements)),
		"ai_graded_at":    s.now(),
		"status":          model.SubjectiveStatusAIGraded,
	})
}

func (s *adminReviewService) Approve(answerID uint, adminID uuid.UUID) (*dto.SubjectiveAnswerResponse, error) {
	answer, err := s.load(answerID)
	if err != nil {
		return nil, err
	}
	if !answer.Reviewable() {
		return nil, fmt.Errorf("subjective answer %d is already reviewed: %w", answerID, ErrInvalidTransition)
	}
	if answer.AIScore == nil {
		return nil, invalid("ai_score", "answer %d has no AI score to approve", answerID)
	}

	resp, err := s.transition(answer, []model.SubjectiveStatus{model.SubjectiveStatusAIGraded}, map[string]any{
		"final_score":       *answer.AIScore,
		"admin_feedback":    model.ApprovedFeedback,
		"admin_reviewer_id": adminID,
		"admin_reviewed_at": s.now(),
		"status":            model.SubjectiveStatusAdminReviewed,
	})
	if err == nil {
		log.Info().Uint("answerID", answerID).Str("adminID", adminID.String()).Msg("AI score approved")
	}
	return resp, err
}

// Override accepts pending as well as ai_graded records; both end in admin_reviewed.
func (s *adminReviewService) Override(answerID uint, req dto.OverrideRequest) (*dto.SubjectiveAnswerResponse, error) {
	if req.Score == nil {
		return nil, invalid("score", "is required")
	}
	answer, err := s.load(answerID)
	if err != nil {
		return nil, err
	}
	if !answer.Reviewable() {
		return nil, fmt.Errorf("subjective answer %d is already reviewed: %w", answerID, ErrInvalidTransition)
	}
	score := *req.Score
	if score < 0 || score > float64(answer.Question.MaxScore) {
		return nil, invalid("score", "must be between 0 and %d, got %g", answer.Question.MaxScore, score)
	}

	updates := map[string]any{
		"admin_score":       score,
		"final_score":       score,
		"admin_reviewer_id": req.AdminID,
		"admin_reviewed_at": s.now(),
		"status":            model.SubjectiveStatusAdminReviewed,
	}
	if req.Feedback != nil {
		updates["admin_feedback"] = *req.Feedback
	}
	resp, err := s.transition(answer, []model.SubjectiveStatus{model.SubjectiveStatusPending, model.SubjectiveStatusAIGraded}, updates)
	if err == nil {
		log.Info().Uint("answerID", answerID).Str("adminID", req.AdminID.String()).Float64("score", score).Msg("AI score overridden")
	}
	return resp, err
}
