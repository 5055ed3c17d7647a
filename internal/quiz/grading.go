package quiz

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
)

type GradingState string

const (
	GradingUngraded GradingState = "ungraded"
	GradingRunning  GradingState = "grading"
	GradingGraded   GradingState = "graded"
	GradingFailed   GradingState = "grading_failed"
)

// GradingResult is the provisional outcome of AI grading for one open-ended answer.
type GradingResult struct {
	Score        float64  `json:"score"`
	MaxScore     int      `json:"max_score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type GradingRequest struct {
	Question   *model.Question
	UserID     uuid.UUID
	AnswerText string
	ImageURL   string
}

// AIGrader grades open-ended answers. Calls may fail and are safe to retry.
type AIGrader interface {
	GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error)
}

// Answer is the in-session state of one question.
type Answer struct {
	Selected     model.AnswerSet `json:"selected,omitempty"`
	Text         string          `json:"text,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Grading      *GradingResult  `json:"grading,omitempty"`
	GradingState GradingState    `json:"grading_state,omitempty"`
	GradingError string          `json:"grading_error,omitempty"`

	revision int
}

// Answered reports whether the user has given any answer for q.
func (a Answer) Answered(q *model.Question) bool {
	if q.IsObjective() {
		return len(a.Selected) > 0
	}
	return a.Text != "" || a.ImageURL != ""
}

type Verdict struct {
	QuestionID uint    `json:"question_id"`
	Score      float64 `json:"score"`
	MaxScore   int     `json:"max_score"`
	IsCorrect  bool    `json:"is_correct"`
	Graded     bool    `json:"graded"`
}

// Strategy scores one answer against one question.
type Strategy interface {
	Grade(q *model.Question, a Answer) Verdict
}

// ObjectiveStrategy awards full marks iff the selection equals the answer key as a set.
// A question with no stored key is never correct.
type ObjectiveStrategy struct{}

func (ObjectiveStrategy) Grade(q *model.Question, a Answer) Verdict {
	v := Verdict{QuestionID: q.ID, MaxScore: q.MaxScore, Graded: true}
	if len(q.CorrectAnswers) > 0 && a.Selected.Equal(q.CorrectAnswers) {
		v.Score = float64(q.MaxScore)
		v.IsCorrect = true
	}
	return v
}

// OpenEndedStrategy uses the provisional AI result attached to the answer.
// Without one the answer contributes nothing and is not correct.
type OpenEndedStrategy struct{}

func (OpenEndedStrategy) Grade(q *model.Question, a Answer) Verdict {
	v := Verdict{QuestionID: q.ID, MaxScore: q.MaxScore}
	if a.Grading == nil {
		return v
	}
	v.Graded = true
	v.Score = ClampScore(a.Grading.Score, q.MaxScore)
	v.IsCorrect = PassesThreshold(v.Score, q.MaxScore)
	return v
}

func StrategyFor(q *model.Question) Strategy {
	if q.IsObjective() {
		return ObjectiveStrategy{}
	}
	return OpenEndedStrategy{}
}

// PassesThreshold reports score >= 60% of maxScore, inclusive.
func PassesThreshold(score float64, maxScore int) bool {
	return score*5 >= float64(maxScore)*3
}

func ClampScore(score float64, maxScore int) float64 {
	if score < 0 {
		return 0
	}
	if score > float64(maxScore) {
		return float64(maxScore)
	}
	return score
}
