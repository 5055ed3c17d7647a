package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TestResult is the ledger entry of one submitted attempt. Rows are never updated.
type TestResult struct {
	ID                 uint               `gorm:"primarykey" json:"id"`
	UserID             uuid.UUID          `json:"user_id" gorm:"type:uuid;not null;index"`
	Category           Category           `json:"category" gorm:"type:varchar(32);not null"`
	Score              int                `json:"score" gorm:"not null"` // 0-100
	CorrectCount       int                `json:"correct_count" gorm:"not null"`
	TotalCount         int                `json:"total_count" gorm:"not null"`
	CategoryScores     datatypes.JSON     `json:"category_scores"`
	RetestAssignmentID *uint              `json:"retest_assignment_id,omitempty" gorm:"index"`
	SubjectiveAnswers  []SubjectiveAnswer `json:"subjective_answers,omitempty" gorm:"foreignKey:TestResultID"`
	TestDate           time.Time          `json:"test_date" gorm:"not null"`
	CreatedAt          time.Time          `json:"created_at"`
}
