package dto

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
)

// StartSessionRequest picks the question set of a new session: a category
// ("mixed" for every category), a random sample, or a retest assignment.
type StartSessionRequest struct {
	UserID             uuid.UUID       `json:"user_id" binding:"required"`
	Category           *model.Category `json:"category" binding:"omitempty,quiz_category"`
	Random             bool            `json:"random"`
	Size               int             `json:"size" binding:"omitempty,min=1,max=200"`
	RetestAssignmentID *uint           `json:"retest_assignment_id" binding:"omitempty,gt=0"`
}

// CursorRequest either jumps to Index or moves one step with Move.
type CursorRequest struct {
	Index *int   `json:"index" binding:"omitempty,min=0"`
	Move  string `json:"move" binding:"omitempty,oneof=next prev"`
}

type AnswerRequest struct {
	AnswerText *string `json:"answer_text"`
	ImageURL   *string `json:"image_url" binding:"omitempty,url"`
}

type ReviewPageQuery struct {
	UserID      string `form:"user_id" binding:"required,uuid"`
	QuestionIDs string `form:"question_ids"` // comma separated, optional
}

type ReviewHistoryQuery struct {
	UserID string `form:"user_id" binding:"required,uuid"`
}

type ReviewAnswerItem struct {
	QuestionID uint            `json:"question_id" binding:"required"`
	Selected   model.AnswerSet `json:"selected" swaggertype:"array,integer"`
}

type SubmitReviewRequest struct {
	UserID  uuid.UUID          `json:"user_id" binding:"required"`
	Answers []ReviewAnswerItem `json:"answers" binding:"required,min=1,dive"`
}
