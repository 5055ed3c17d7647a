package repository

import (
	"github.com/lshigami/quizdesk/internal/model"
	"gorm.io/gorm"
)

// QuestionFilter narrows catalog listings. Nil fields do not filter.
type QuestionFilter struct {
	Category    *model.Category
	SubCategory *string
	Type        *model.QuestionType
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindAll(filter QuestionFilter) ([]model.Question, error)
	FindRandom(limit int) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs returns the questions in the order of ids, skipping unknown ids.
func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}
	var found []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(found))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, q)
	}
	return ordered, nil
}

func (r *questionRepository) FindAll(filter QuestionFilter) ([]model.Question, error) {
	query := r.db.Model(&model.Question{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.SubCategory != nil {
		query = query.Where("sub_category = ?", *filter.SubCategory)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	var questions []model.Question
	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindRandom(limit int) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("RANDOM()").Limit(limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
