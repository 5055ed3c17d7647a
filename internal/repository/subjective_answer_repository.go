package repository

import (
	"github.com/lshigami/quizdesk/internal/model"
	"gorm.io/gorm"
)

type SubjectiveAnswerRepository interface {
	Create(answer *model.SubjectiveAnswer) error
	FindByID(id uint) (*model.SubjectiveAnswer, error)
	FindReviewQueue() ([]model.SubjectiveAnswer, error)
	FindByTestResult(testResultID uint) ([]model.SubjectiveAnswer, error)
	// Transition applies updates only while the record is in one of the from
	// statuses and reports whether a row changed.
	Transition(id uint, from []model.SubjectiveStatus, updates map[string]any) (bool, error)
}

type subjectiveAnswerRepository struct {
	db *gorm.DB
}

func NewSubjectiveAnswerRepository(db *gorm.DB) SubjectiveAnswerRepository {
	return &subjectiveAnswerRepository{db: db}
}

func (r *subjectiveAnswerRepository) Create(answer *model.SubjectiveAnswer) error {
	return r.db.Create(answer).Error
}

func (r *subjectiveAnswerRepository) FindByID(id uint) (*model.SubjectiveAnswer, error) {
	var answer model.SubjectiveAnswer
	if err := r.db.Preload("Question", unscoped).First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *subjectiveAnswerRepository) FindReviewQueue() ([]model.SubjectiveAnswer, error) {
	var answers []model.SubjectiveAnswer
	err := r.db.Preload("Question", unscoped).
		Where("status IN ?", []model.SubjectiveStatus{model.SubjectiveStatusPending, model.SubjectiveStatusAIGraded}).
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *subjectiveAnswerRepository) FindByTestResult(testResultID uint) ([]model.SubjectiveAnswer, error) {
	var answers []model.SubjectiveAnswer
	err := r.db.Preload("Question", unscoped).Where("test_result_id = ?", testResultID).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *subjectiveAnswerRepository) Transition(id uint, from []model.SubjectiveStatus, updates map[string]any) (bool, error) {
	result := r.db.Model(&model.SubjectiveAnswer{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// unscoped lets history views load questions that were later soft-deleted.
func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
