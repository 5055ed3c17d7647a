package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestSubmissionService is the result ledger: it records scored sessions and
// serves the stored results.
type TestSubmissionService interface {
	quiz.Ledger
	GetResult(resultID uint) (*dto.TestResultDetail, error)
	ListUserResults(userID uuid.UUID) ([]dto.TestResultSummary, error)
	ListSubjectiveAnswers(resultID uint) ([]dto.SubjectiveAnswerResponse, error)
}

type testSubmissionService struct {
	resultRepo     repository.TestResultRepository
	subjectiveRepo repository.SubjectiveAnswerRepository
	db             *gorm.DB // used for the recording transaction
}

func NewTestSubmissionService(
	resultRepo repository.TestResultRepository,
	subjectiveRepo repository.SubjectiveAnswerRepository,
	db *gorm.DB,
) TestSubmissionService {
	return &testSubmissionService{
		resultRepo:     resultRepo,
		subjectiveRepo: subjectiveRepo,
		db:             db,
	}
}

// Record stores the result row, one subjective answer per answered open-ended
// question and the completion of the originating retest, all in one transaction.
// A retest that is no longer pending is not linked to the result.
func (s *testSubmissionService) Record(ctx context.Context, sub quiz.Submission) (uint, error) {
	result := model.TestResult{
		UserID:             sub.UserID,
		Category:           sub.Category,
		Score:              sub.Outcome.Percentage,
		CorrectCount:       sub.Outcome.CorrectCount,
		TotalCount:         sub.Outcome.TotalCount,
		CategoryScores:     datatypes.JSON("{}"),
		RetestAssignmentID: sub.RetestAssignmentID,
		TestDate:           sub.SubmittedAt,
		SubjectiveAnswers:  subjectiveRows(sub),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sub.RetestAssignmentID != nil {
			completed, err := repository.NewRetestAssignmentRepository(tx).MarkCompleted(*sub.RetestAssignmentID, sub.SubmittedAt)
			if err != nil {
				return fmt.Errorf("failed to complete retest assignment %d: %w", *sub.RetestAssignmentID, err)
			}
			if !completed {
				// Only the result that completed the assignment links to it.
				log.Warn().Uint("assignmentID", *sub.RetestAssignmentID).Msg("Retest assignment was not pending; result recorded without it")
				result.RetestAssignmentID = nil
			}
		}
		if err := repository.NewTestResultRepository(tx).Create(&result); err != nil {
			return fmt.Errorf("failed to create test result: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("sessionID", sub.SessionID.String()).Str("userID", sub.UserID.String()).Msg("Record: transaction failed")
		return 0, err
	}

	log.Info().
		Uint("resultID", result.ID).
		Str("userID", sub.UserID.String()).
		Int("score", result.Score).
		Int("subjectiveAnswers", len(result.SubjectiveAnswers)).
		Msg("Test result recorded")
	return result.ID, nil
}

func subjectiveRows(sub quiz.Submission) []model.SubjectiveAnswer {
	var rows []model.SubjectiveAnswer
	for i := range sub.Questions {
		q := &sub.Questions[i]
		a := sub.Answers[i]
		if !q.IsOpenEnded() || !a.Answered(q) {
			continue
		}
		row := model.SubjectiveAnswer{
			QuestionID: q.ID,
			UserID:     sub.UserID,
			AnswerText: optionalString(a.Text),
			ImageURL:   optionalString(a.ImageURL),
			Status:     model.SubjectiveStatusPending,
		}
		if a.Grading != nil {
			score := a.Grading.Score
			feedback := a.Grading.Feedback
			gradedAt := sub.SubmittedAt
			row.AIScore = &score
			row.AIFeedback = &feedback
			row.AIStrengths = model.StringList(a.Grading.Strengths)
			row.AIImprovements = model.StringList(a.Grading.Improvements)
			row.AIGradedAt = &gradedAt
			row.Status = model.SubjectiveStatusAIGraded
		}
		rows = append(rows, row)
	}
	return rows
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (s *testSubmissionService) GetResult(resultID uint) (*dto.TestResultDetail, error) {
	result, err := s.resultRepo.FindByIDWithDetails(resultID)
	if err != nil {
		return nil, lookupErr(err, "test result", resultID)
	}
	return &dto.TestResultDetail{
		TestResultSummary: toResultSummary(result),
		SubjectiveAnswers: toSubjectiveAnswerResponses(result.SubjectiveAnswers),
	}, nil
}

func (s *testSubmissionService) ListUserResults(userID uuid.UUID) ([]dto.TestResultSummary, error) {
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for user %s: %w", userID, err)
	}
	resp := make([]dto.TestResultSummary, 0, len(results))
	for i := range results {
		resp = append(resp, toResultSummary(&results[i]))
	}
	return resp, nil
}

func (s *testSubmissionService) ListSubjectiveAnswers(resultID uint) ([]dto.SubjectiveAnswerResponse, error) {
	if _, err := s.resultRepo.FindByID(resultID); err != nil {
		return nil, lookupErr(err, "test result", resultID)
	}
	answers, err := s.subjectiveRepo.FindByTestResult(resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjective answers of result %d: %w", resultID, err)
	}
	return toSubjectiveAnswerResponses(answers), nil
}
