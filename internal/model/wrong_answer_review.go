package model

import (
	"time"

	"github.com/google/uuid"
)

// WrongAnswerReview logs one re-attempt of an objective question. Append-only.
type WrongAnswerReview struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	UserID            uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TestResultID      uint      `json:"test_result_id" gorm:"not null;index"`
	QuestionID        uint      `json:"question_id" gorm:"not null;index"`
	ReviewAnswer      AnswerSet `json:"review_answer"`
	IsCorrectOnReview bool      `json:"is_correct_on_review" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
}
