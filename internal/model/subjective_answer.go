package model

import (
	"time"

	"github.com/google/uuid"
)

type SubjectiveStatus string

const (
	SubjectiveStatusPending       SubjectiveStatus = "pending"
	SubjectiveStatusAIGraded      SubjectiveStatus = "ai_graded"
	SubjectiveStatusAdminReviewed SubjectiveStatus = "admin_reviewed"
)

// ApprovedFeedback is stored as admin feedback when the AI score is accepted as-is.
const ApprovedFeedback = "approved"

type SubjectiveAnswer struct {
	ID              uint             `gorm:"primarykey" json:"id"`
	QuestionID      uint             `json:"question_id" gorm:"not null;index"`
	Question        Question         `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserID          uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	TestResultID    *uint            `json:"test_result_id,omitempty" gorm:"index"`
	AnswerText      *string          `json:"answer_text,omitempty" gorm:"type:text"`
	ImageURL        *string          `json:"image_url,omitempty"`
	AIScore         *float64         `json:"ai_score,omitempty"`
	AIFeedback      *string          `json:"ai_feedback,omitempty" gorm:"type:text"`
	AIStrengths     StringList       `json:"ai_strengths,omitempty"`
	AIImprovements  StringList       `json:"ai_improvements,omitempty"`
	AIGradedAt      *time.Time       `json:"ai_graded_at,omitempty"`
	AdminScore      *float64         `json:"admin_score,omitempty"`
	AdminFeedback   *string          `json:"admin_feedback,omitempty" gorm:"type:text"`
	AdminReviewerID *uuid.UUID       `json:"admin_reviewer_id,omitempty" gorm:"type:uuid"`
	AdminReviewedAt *time.Time       `json:"admin_reviewed_at,omitempty"`
	FinalScore      *float64         `json:"final_score,omitempty"`
	Status          SubjectiveStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Reviewable reports whether the record still sits in the admin queue.
func (a *SubjectiveAnswer) Reviewable() bool {
	return a.Status == SubjectiveStatusPending || a.Status == SubjectiveStatusAIGraded
}
