package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
	"gorm.io/gorm"
)

type WrongAnswerReviewRepository interface {
	CreateBatch(reviews []model.WrongAnswerReview) error
	FindByUserAndResult(userID uuid.UUID, testResultID uint) ([]model.WrongAnswerReview, error)
}

type wrongAnswerReviewRepository struct {
	db *gorm.DB
}

func NewWrongAnswerReviewRepository(db *gorm.DB) WrongAnswerReviewRepository {
	return &wrongAnswerReviewRepository{db: db}
}

func (r *wrongAnswerReviewRepository) CreateBatch(reviews []model.WrongAnswerReview) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.Create(&reviews).Error
}

func (r *wrongAnswerReviewRepository) FindByUserAndResult(userID uuid.UUID, testResultID uint) ([]model.WrongAnswerReview, error) {
	var reviews []model.WrongAnswerReview
	err := r.db.Where("user_id = ? AND test_result_id = ?", userID, testResultID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	return reviews, err
}
