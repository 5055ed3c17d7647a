package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
)

// QuestionRequest is used by admins to create or replace a catalog question.
type QuestionRequest struct {
	Category       model.Category     `json:"category" binding:"required,quiz_category"`
	SubCategory    *string            `json:"sub_category"`
	Prompt         string             `json:"prompt" binding:"required"`
	ImageURLs      []string           `json:"image_urls" binding:"omitempty,dive,url"`
	Type           model.QuestionType `json:"type" binding:"required,oneof=objective open_ended"`
	Options        []string           `json:"options" binding:"omitempty,dive,required"`
	CorrectAnswers model.AnswerSet    `json:"correct_answers" swaggertype:"array,integer"` // a single index or an array
	Rubric         *string            `json:"rubric"`
	ModelAnswer    *string            `json:"model_answer"`
	MaxScore       int                `json:"max_score" binding:"required,gt=0"`
	SourcePostID   *uint              `json:"source_post_id"`
}

// QuestionResponse is the admin view of a question, answer key included.
type QuestionResponse struct {
	ID             uint               `json:"id"`
	Category       model.Category     `json:"category"`
	SubCategory    *string            `json:"sub_category,omitempty"`
	Prompt         string             `json:"prompt"`
	ImageURLs      []string           `json:"image_urls,omitempty"`
	Type           model.QuestionType `json:"type"`
	Options        []string           `json:"options,omitempty"`
	CorrectAnswers []int              `json:"correct_answers,omitempty"`
	Rubric         *string            `json:"rubric,omitempty"`
	ModelAnswer    *string            `json:"model_answer,omitempty"`
	MaxScore       int                `json:"max_score"`
	SourcePostID   *uint              `json:"source_post_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// QuestionListQuery filters the admin question listing.
type QuestionListQuery struct {
	Category    *model.Category     `form:"category" binding:"omitempty,quiz_category"`
	SubCategory *string             `form:"sub_category"`
	Type        *model.QuestionType `form:"type" binding:"omitempty,oneof=objective open_ended"`
}

type SubjectiveAnswerResponse struct {
	ID              uint                   `json:"id"`
	QuestionID      uint                   `json:"question_id"`
	QuestionPrompt  string                 `json:"question_prompt"`
	MaxScore        int                    `json:"max_score"`
	UserID          uuid.UUID              `json:"user_id"`
	TestResultID    *uint                  `json:"test_result_id,omitempty"`
	AnswerText      *string                `json:"answer_text,omitempty"`
	ImageURL        *string                `json:"image_url,omitempty"`
	AIScore         *float64               `json:"ai_score,omitempty"`
	AIFeedback      *string                `json:"ai_feedback,omitempty"`
	AIStrengths     []string               `json:"ai_strengths,omitempty"`
	AIImprovements  []string               `json:"ai_improvements,omitempty"`
	AIGradedAt      *time.Time             `json:"ai_graded_at,omitempty"`
	AdminScore      *float64               `json:"admin_score,omitempty"`
	AdminFeedback   *string                `json:"admin_feedback,omitempty"`
	AdminReviewerID *uuid.UUID             `json:"admin_reviewer_id,omitempty"`
	AdminReviewedAt *time.Time             `json:"admin_reviewed_at,omitempty"`
	FinalScore      *float64               `json:"final_score,omitempty"`
	Status          model.SubjectiveStatus `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
}

type ApproveRequest struct {
	AdminID uuid.UUID `json:"admin_id" binding:"required"`
}

type OverrideRequest struct {
	AdminID  uuid.UUID `json:"admin_id" binding:"required"`
	Score    *float64  `json:"score" binding:"required"`
	Feedback *string   `json:"feedback"`
}

// RetestCreateRequest assigns a retest to one manager, scoped to a category,
// an explicit question list, or both (the list wins).
type RetestCreateRequest struct {
	AdminID     uuid.UUID       `json:"admin_id" binding:"required"`
	ManagerID   uuid.UUID       `json:"manager_id" binding:"required"`
	Category    *model.Category `json:"category" binding:"omitempty,quiz_category"`
	QuestionIDs []uint          `json:"question_ids" binding:"omitempty,dive,gt=0"`
	Reason      *string         `json:"reason"`
}

type RetestListQuery struct {
	Status *model.RetestStatus `form:"status" binding:"omitempty,oneof=pending completed"`
}

type RetestResponse struct {
	ID          uint               `json:"id"`
	AdminID     uuid.UUID          `json:"admin_id"`
	ManagerID   uuid.UUID          `json:"manager_id"`
	Category    *model.Category    `json:"category,omitempty"`
	QuestionIDs []uint             `json:"question_ids,omitempty"`
	Reason      *string            `json:"reason,omitempty"`
	Status      model.RetestStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}
