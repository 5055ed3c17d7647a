package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/model"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

type RetestService interface {
	CreateAssignment(req dto.RetestCreateRequest) (*dto.RetestResponse, error)
	ListAssignments(status *model.RetestStatus) ([]dto.RetestResponse, error)
	ListPendingForManager(managerID uuid.UUID) ([]dto.RetestResponse, error)
	GetAssignment(id uint) (*model.RetestAssignment, error)
	// Complete marks a pending assignment completed. Completing twice is a no-op.
	Complete(id uint) error
}

type retestService struct {
	repo      repository.RetestAssignmentRepository
	questions QuestionService
	now       func() time.Time
}

func NewRetestService(repo repository.RetestAssignmentRepository, questions QuestionService) RetestService {
	return &retestService{repo: repo, questions: questions, now: time.Now}
}

func (s *retestService) CreateAssignment(req dto.RetestCreateRequest) (*dto.RetestResponse, error) {
	if req.AdminID == uuid.Nil {
		return nil, invalid("admin_id", "is required")
	}
	if req.ManagerID == uuid.Nil {
		return nil, invalid("manager_id", "is required")
	}
	if len(req.QuestionIDs) > 0 {
		found, err := s.questions.ByIDs(req.QuestionIDs)
		if err != nil {
			return nil, err
		}
		if missing := missingIDs(req.QuestionIDs, found); len(missing) > 0 {
			return nil, invalid("question_ids", "unknown question ids %v", missing)
		}
	}

	assignment := model.RetestAssignment{
		AdminID:     req.AdminID,
		ManagerID:   req.ManagerID,
		Category:    req.Category,
		QuestionIDs: model.IDList(req.QuestionIDs),
		Reason:      req.Reason,
		Status:      model.RetestStatusPending,
	}
	if err := s.repo.Create(&assignment); err != nil {
		log.Error().Err(err).Str("managerID", req.ManagerID.String()).Msg("Failed to create retest assignment")
		return nil, fmt.Errorf("failed to create retest assignment: %w", err)
	}
	log.Info().Uint("assignmentID", assignment.ID).Str("managerID", req.ManagerID.String()).Msg("Retest assigned")
	resp := toRetestResponse(&assignment)
	return &resp, nil
}

func missingIDs(requested []uint, found []model.Question) []uint {
	present := make(map[uint]bool, len(found))
	for _, q := range found {
		present[q.ID] = true
	}
	var missing []uint
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func (s *retestService) ListAssignments(status *model.RetestStatus) ([]dto.RetestResponse, error) {
	assignments, err := s.repo.FindAll(status)
	if err != nil {
		return nil, fmt.Errorf("failed to list retest assignments: %w", err)
	}
	return toRetestResponses(assignments), nil
}

func (s *retestService) ListPendingForManager(managerID uuid.UUID) ([]dto.RetestResponse, error) {
	assignments, err := s.repo.FindPendingByManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list retests of manager %s: %w", managerID, err)
	}
	return toRetestResponses(assignments), nil
}

func (s *retestService) GetAssignment(id uint) (*model.RetestAssignment, error) {
	assignment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, "retest assignment", id)
	}
	return assignment, nil
}

func (s *retestService) Complete(id uint) error {
	changed, err := s.repo.MarkCompleted(id, s.now())
	if err != nil {
		return fmt.Errorf("failed to complete retest assignment %d: %w", id, err)
	}
	if changed {
		log.Info().Uint("assignmentID", id).Msg("Retest assignment completed")
		return nil
	}
	if _, err := s.GetAssignment(id); err != nil {
		return err
	}
	return nil
}
