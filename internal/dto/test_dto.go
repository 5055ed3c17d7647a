package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
)

// TestResultSummary is used for listing a user's results.
type TestResultSummary struct {
	ID                 uint           `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	Category           model.Category `json:"category"`
	Score              int            `json:"score"`
	CorrectCount       int            `json:"correct_count"`
	TotalCount         int            `json:"total_count"`
	RetestAssignmentID *uint          `json:"retest_assignment_id,omitempty"`
	TestDate           time.Time      `json:"test_date"`
}

type TestResultDetail struct {
	TestResultSummary
	SubjectiveAnswers []SubjectiveAnswerResponse `json:"subjective_answers"`
}

// ReviewQuestionResponse carries the answer key so the client can show which
// questions were missed.
type ReviewQuestionResponse struct {
	ID             uint           `json:"id"`
	Category       model.Category `json:"category"`
	Prompt         string         `json:"prompt"`
	ImageURLs      []string       `json:"image_urls,omitempty"`
	Options        []string       `json:"options"`
	CorrectAnswers []int          `json:"correct_answers"`
	MaxScore       int            `json:"max_score"`
}

type ReviewPageResponse struct {
	Result    TestResultSummary        `json:"result"`
	Questions []ReviewQuestionResponse `json:"questions"`
}

type WrongAnswerReviewResponse struct {
	ID                uint      `json:"id"`
	TestResultID      uint      `json:"test_result_id"`
	QuestionID        uint      `json:"question_id"`
	ReviewAnswer      []int     `json:"review_answer"`
	IsCorrectOnReview bool      `json:"is_correct_on_review"`
	CreatedAt         time.Time `json:"created_at"`
}

type SubmitReviewResponse struct {
	Reviews      []WrongAnswerReviewResponse `json:"reviews"`
	CorrectCount int                         `json:"correct_count"`
	Saved        bool                        `json:"saved"`
}
