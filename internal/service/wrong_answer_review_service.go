package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

// WrongAnswerReviewService lets a user re-attempt objective questions of a
// stored result. Reviews are logged separately and never touch the result.
type WrongAnswerReviewService interface {
	ReviewQuestions(resultID uint, userID uuid.UUID, questionIDs []uint) (*dto.ReviewPageResponse, error)
	SubmitReview(resultID uint, req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error)
	ListReviews(resultID uint, userID uuid.UUID) ([]dto.WrongAnswerReviewResponse, error)
}

type wrongAnswerReviewService struct {
	resultRepo repository.TestResultRepository
	reviewRepo repository.WrongAnswerReviewRepository
	questions  QuestionService
}

func NewWrongAnswerReviewService(
	resultRepo repository.TestResultRepository,
	reviewRepo repository.WrongAnswerReviewRepository,
	questions QuestionService,
) WrongAnswerReviewService {
	return &wrongAnswerReviewService{resultRepo: resultRepo, reviewRepo: reviewRepo, questions: questions}
}

// ownedResult loads a result and hides results of other users as not found.
func (s *wrongAnswerReviewService) ownedResult(resultID uint, userID uuid.UUID) (*model.TestResult, error) {
	result, err := s.resultRepo.FindByID(resultID)
	if err != nil {
		return nil, lookupErr(err, "test result", resultID)
	}
	if result.UserID != userID {
		return nil, fmt.Errorf("test result %d of another user: %w", resultID, ErrNotFound)
	}
	return result, nil
}

func (s *wrongAnswerReviewService) ReviewQuestions(resultID uint, userID uuid.UUID, questionIDs []uint) (*dto.ReviewPageResponse, error) {
	result, err := s.ownedResult(resultID, userID)
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if len(questionIDs) > 0 {
		questions, err = s.questions.ByIDs(questionIDs)
	} else {
		questions, err = s.questions.ByCategory(result.Category)
	}
	if err != nil {
		return nil, err
	}

	page := &dto.ReviewPageResponse{
		Result:    toResultSummary(result),
		Questions: make([]dto.ReviewQuestionResponse, 0, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		if !q.IsObjective() || !inScope(result, q) {
			continue
		}
		page.Questions = append(page.Questions, dto.ReviewQuestionResponse{
			ID:             q.ID,
			Category:       q.Category,
			Prompt:         q.Prompt,
			ImageURLs:      q.ImageURLs,
			Options:        q.Options,
			CorrectAnswers: q.CorrectAnswers,
			MaxScore:       q.MaxScore,
		})
	}
	return page, nil
}

// inScope reports whether q can belong to result. Retest and mixed results may
// hold questions of any category.
func inScope(result *model.TestResult, q *model.Question) bool {
	if result.RetestAssignmentID != nil || result.Category == model.CategoryMixed {
		return true
	}
	return q.Category == result.Category
}

// SubmitReview checks each answer against the key and appends one review row
// per objective question. A failed insert is logged and reported as Saved=false.
func (s *wrongAnswerReviewService) SubmitReview(resultID uint, req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	result, err := s.ownedResult(resultID, req.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(req.Answers))
	for _, a := range req.Answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questions.ByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	reviews := make([]model.WrongAnswerReview, 0, len(req.Answers))
	for _, a := range req.Answers {
		q, ok := byID[a.QuestionID]
		if !ok || !q.IsObjective() {
			log.Warn().Uint("questionID", a.QuestionID).Uint("resultID", resultID).Msg("SubmitReview: skipping unknown or open-ended question")
			continue
		}
		if !inScope(result, q) {
			return nil, invalid("answers", "question %d is outside the %s result", q.ID, result.Category)
		}
		for _, idx := range a.Selected {
			if idx < 0 || idx >= len(q.Options) {
				return nil, invalid("answers", "option %d of question %d is out of range (0-%d)", idx, q.ID, len(q.Options)-1)
			}
		}
		selected := model.NewAnswerSet(a.Selected...)
		reviews = append(reviews, model.WrongAnswerReview{
			UserID:            req.UserID,
			TestResultID:      resultID,
			QuestionID:        q.ID,
			ReviewAnswer:      selected,
			IsCorrectOnReview: selected.Equal(q.CorrectAnswers),
		})
	}
	if len(reviews) == 0 {
		return nil, invalid("answers", "no objective questions to review")
	}

	resp := &dto.SubmitReviewResponse{Saved: true}
	if err := s.reviewRepo.CreateBatch(reviews); err != nil {
		log.Error().Err(err).Uint("resultID", resultID).Str("userID", req.UserID.String()).Msg("Failed to store wrong-answer reviews")
		resp.Saved = false
	}
	resp.Reviews = make([]dto.WrongAnswerReviewResponse, 0, len(reviews))
	for i := range reviews {
		if reviews[i].IsCorrectOnReview {
			resp.CorrectCount++
		}
		resp.Reviews = append(resp.Reviews, toReviewResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *wrongAnswerReviewService) ListReviews(resultID uint, userID uuid.UUID) ([]dto.WrongAnswerReviewResponse, error) {
	if _, err := s.ownedResult(resultID, userID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByUserAndResult(userID, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews of result %d: %w", resultID, err)
	}
	resp := make([]dto.WrongAnswerReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, toReviewResponse(&reviews[i]))
	}
	return resp, nil
}
