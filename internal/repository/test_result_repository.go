package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/model"
	"gorm.io/gorm"
)

type TestResultRepository interface {
	Create(result *model.TestResult) error
	FindByID(id uint) (*model.TestResult, error)
	FindByIDWithDetails(id uint) (*model.TestResult, error)
	FindAllByUser(userID uuid.UUID) ([]model.TestResult, error)
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) Create(result *model.TestResult) error {
	// GORM creates associated SubjectiveAnswers if result.SubjectiveAnswers is populated.
	return r.db.Create(result).Error
}

func (r *testResultRepository) FindByID(id uint) (*model.TestResult, error) {
	var result model.TestResult
	if err := r.db.First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *testResultRepository) FindByIDWithDetails(id uint) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.
		Preload("SubjectiveAnswers", func(db *gorm.DB) *gorm.DB {
			return db.Order("subjective_answers.id ASC")
		}).
		Preload("SubjectiveAnswers.Question", unscoped).
		First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *testResultRepository) FindAllByUser(userID uuid.UUID) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Where("user_id = ?", userID).Order("test_date DESC, id DESC").Find(&results).Error
	return results, err
}
