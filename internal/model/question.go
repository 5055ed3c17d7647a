package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Category       Category       `json:"category" gorm:"type:varchar(32);not null;index"`
	SubCategory    *string        `json:"sub_category,omitempty" gorm:"type:varchar(64)"`
	Prompt         string         `json:"prompt" gorm:"type:text;not null"`
	ImageURLs      StringList     `json:"image_urls,omitempty"`
	Type           QuestionType   `json:"type" gorm:"type:varchar(16);not null"` // "objective", "open_ended"
	Options        StringList     `json:"options,omitempty"`
	CorrectAnswers AnswerSet      `json:"correct_answers,omitempty"`
	Rubric         *string        `json:"rubric,omitempty" gorm:"type:text"`
	ModelAnswer    *string        `json:"model_answer,omitempty" gorm:"type:text"`
	MaxScore       int            `json:"max_score" gorm:"not null;default:10"`
	SourcePostID   *uint          `json:"source_post_id,omitempty" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) IsObjective() bool { return q.Type == QuestionTypeObjective }
func (q *Question) IsOpenEnded() bool { return q.Type == QuestionTypeOpenEnded }

// Validate enforces that exactly one of (options + answer key) or rubric is
// populated, matching the question type.
func (q *Question) Validate() error {
	if !q.Category.Valid() {
		return fmt.Errorf("unknown category %q", q.Category)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if q.MaxScore <= 0 {
		return fmt.Errorf("max_score must be positive, got %d", q.MaxScore)
	}
	hasRubric := q.Rubric != nil && strings.TrimSpace(*q.Rubric) != ""

	switch q.Type {
	case QuestionTypeObjective:
		if len(q.Options) < 2 {
			return fmt.Errorf("objective question needs at least 2 options, got %d", len(q.Options))
		}
		if len(q.CorrectAnswers) == 0 {
			return fmt.Errorf("objective question needs at least one correct answer")
		}
		for _, idx := range q.CorrectAnswers {
			if idx < 0 || idx >= len(q.Options) {
				return fmt.Errorf("correct answer index %d is out of range (0-%d)", idx, len(q.Options)-1)
			}
		}
		if hasRubric || q.ModelAnswer != nil {
			return fmt.Errorf("objective question must not carry a rubric or model answer")
		}
	case QuestionTypeOpenEnded:
		if !hasRubric {
			return fmt.Errorf("open-ended question needs a grading rubric")
		}
		if len(q.Options) > 0 || len(q.CorrectAnswers) > 0 {
			return fmt.Errorf("open-ended question must not carry options or an answer key")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
