package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/quiz"
)

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type GradingResponse struct {
	Score        float64  `json:"score"`
	MaxScore     int      `json:"max_score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// SessionQuestionResponse is one question of a running session with the
// user's current answer. Answer keys and rubrics are never included.
type SessionQuestionResponse struct {
	Index        int                `json:"index"`
	ID           uint               `json:"id"`
	Category     model.Category     `json:"category"`
	SubCategory  *string            `json:"sub_category,omitempty"`
	Prompt       string             `json:"prompt"`
	ImageURLs    []string           `json:"image_urls,omitempty"`
	Type         model.QuestionType `json:"type"`
	Options      []string           `json:"options,omitempty"`
	MaxScore     int                `json:"max_score"`
	Selected     []int              `json:"selected,omitempty"`
	AnswerText   string             `json:"answer_text,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	Answered     bool               `json:"answered"`
	GradingState quiz.GradingState  `json:"grading_state,omitempty"`
	Grading      *GradingResponse   `json:"grading,omitempty"`
	GradingError string             `json:"grading_error,omitempty"`
}

type VerdictResponse struct {
	QuestionID uint    `json:"question_id"`
	Score      float64 `json:"score"`
	MaxScore   int     `json:"max_score"`
	IsCorrect  bool    `json:"is_correct"`
	Graded     bool    `json:"graded"`
}

type OutcomeResponse struct {
	TotalAwarded float64           `json:"total_awarded"`
	TotalMax     int               `json:"total_max"`
	Percentage   int               `json:"percentage"`
	CorrectCount int               `json:"correct_count"`
	TotalCount   int               `json:"total_count"`
	Verdicts     []VerdictResponse `json:"verdicts"`
	ResultID     *uint             `json:"result_id,omitempty"`
	Saved        bool              `json:"saved"`
	Warning      string            `json:"warning,omitempty"`
}

type SessionResponse struct {
	SessionID          uuid.UUID                 `json:"session_id"`
	UserID             uuid.UUID                 `json:"user_id"`
	Category           model.Category            `json:"category"`
	RetestAssignmentID *uint                     `json:"retest_assignment_id,omitempty"`
	State              quiz.State                `json:"state"`
	Cursor             int                       `json:"cursor"`
	TotalQuestions     int                       `json:"total_questions"`
	AnsweredCount      int                       `json:"answered_count"`
	Progress           int                       `json:"progress"`
	Questions          []SessionQuestionResponse `json:"questions"`
	Outcome            *OutcomeResponse          `json:"outcome,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// SaveWarning is shown to the user when the result could not be stored.
const SaveWarning = "The result could not be saved. Your score is shown but is not recorded."

func NewGradingResponse(g *quiz.GradingResult) *GradingResponse {
	if g == nil {
		return nil
	}
	return &GradingResponse{
		Score:        g.Score,
		MaxScore:     g.MaxScore,
		Feedback:     g.Feedback,
		Strengths:    g.Strengths,
		Improvements: g.Improvements,
	}
}

func NewOutcomeResponse(o *quiz.Outcome) *OutcomeResponse {
	if o == nil {
		return nil
	}
	resp := &OutcomeResponse{
		TotalAwarded: o.TotalAwarded,
		TotalMax:     o.TotalMax,
		Percentage:   o.Percentage,
		CorrectCount: o.CorrectCount,
		TotalCount:   o.TotalCount,
		Verdicts:     make([]VerdictResponse, 0, len(o.Verdicts)),
		ResultID:     o.ResultID,
		Saved:        o.Saved,
	}
	for _, v := range o.Verdicts {
		resp.Verdicts = append(resp.Verdicts, VerdictResponse{
			QuestionID: v.QuestionID,
			Score:      v.Score,
			MaxScore:   v.MaxScore,
			IsCorrect:  v.IsCorrect,
			Graded:     v.Graded,
		})
	}
	if !o.Saved {
		resp.Warning = SaveWarning
	}
	return resp
}

func NewSessionResponse(snap quiz.Snapshot) SessionResponse {
	resp := SessionResponse{
		SessionID:          snap.ID,
		UserID:             snap.UserID,
		Category:           snap.Origin.Category,
		RetestAssignmentID: snap.Origin.RetestAssignmentID,
		State:              snap.State,
		Cursor:             snap.Cursor,
		TotalQuestions:     len(snap.Questions),
		AnsweredCount:      snap.AnsweredCount,
		Progress:           snap.Progress,
		Questions:          make([]SessionQuestionResponse, 0, len(snap.Questions)),
		Outcome:            NewOutcomeResponse(snap.Outcome),
		CreatedAt:          snap.CreatedAt,
	}
	for i := range snap.Questions {
		q := &snap.Questions[i]
		a := snap.Answers[i]
		resp.Questions = append(resp.Questions, SessionQuestionResponse{
			Index:        i,
			ID:           q.ID,
			Category:     q.Category,
			SubCategory:  q.SubCategory,
			Prompt:       q.Prompt,
			ImageURLs:    q.ImageURLs,
			Type:         q.Type,
			Options:      q.Options,
			MaxScore:     q.MaxScore,
			Selected:     a.Selected,
			AnswerText:   a.Text,
			ImageURL:     a.ImageURL,
			Answered:     a.Answered(q),
			GradingState: a.GradingState,
			Grading:      NewGradingResponse(a.Grading),
			GradingError: a.GradingError,
		})
	}
	return resp
}
