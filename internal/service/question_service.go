package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	CreateQuestion(req dto.QuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(id uint) (*dto.QuestionResponse, error)
	ListQuestions(query dto.QuestionListQuery) ([]dto.QuestionResponse, error)
	UpdateQuestion(id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id uint) error

	// ByCategory returns every question of category; CategoryMixed returns the whole catalog.
	ByCategory(category model.Category) ([]model.Question, error)
	ByIDs(ids []uint) ([]model.Question, error)
	RandomSample(n int) ([]model.Question, error)
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func questionFromRequest(req dto.QuestionRequest, question *model.Question) error {
	if err := copier.Copy(question, &req); err != nil {
		return fmt.Errorf("failed to map question request: %w", err)
	}
	question.CorrectAnswers = model.NewAnswerSet(req.CorrectAnswers...)
	if len(question.CorrectAnswers) == 0 {
		question.CorrectAnswers = nil
	}
	if err := question.Validate(); err != nil {
		return invalid("question", "%s", err.Error())
	}
	return nil
}

func (s *questionService) CreateQuestion(req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	var question model.Question
	if err := questionFromRequest(req, &question); err != nil {
		return nil, err
	}
	if err := s.repo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	resp := toQuestionResponse(&question)
	return &resp, nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, "question", id)
	}
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *questionService) ListQuestions(query dto.QuestionListQuery) ([]dto.QuestionResponse, error) {
	filter := repository.QuestionFilter{SubCategory: query.SubCategory, Type: query.Type}
	if query.Category != nil && *query.Category != model.CategoryMixed {
		filter.Category = query.Category
	}
	questions, err := s.repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toQuestionResponses(questions), nil
}

func (s *questionService) UpdateQuestion(id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, "question", id)
	}
	// Replace every editable field so stale options or rubrics do not survive a type change.
	updated := model.Question{ID: question.ID, CreatedAt: question.CreatedAt}
	if err := questionFromRequest(req, &updated); err != nil {
		return nil, err
	}
	if err := s.repo.Update(&updated); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	resp := toQuestionResponse(&updated)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return lookupErr(err, "question", id)
	}
	log.Info().Uint("questionID", id).Msg("Question deleted")
	return nil
}

func (s *questionService) ByCategory(category model.Category) ([]model.Question, error) {
	var filter repository.QuestionFilter
	if category != model.CategoryMixed {
		filter.Category = &category
	}
	questions, err := s.repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for category %s: %w", category, err)
	}
	return questions, nil
}

func (s *questionService) ByIDs(ids []uint) ([]model.Question, error) {
	questions, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions by id: %w", err)
	}
	return questions, nil
}

func (s *questionService) RandomSample(n int) ([]model.Question, error) {
	if n <= 0 {
		return nil, invalid("size", "must be positive, got %d", n)
	}
	questions, err := s.repo.FindRandom(n)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	return questions, nil
}
